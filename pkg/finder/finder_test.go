package finder_test

import (
	"errors"
	"fmt"
	"testing"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/riposo/finder/pkg/finder"
)

var _ = Describe("ConfigurationError", func() {
	It("formats messages", func() {
		Expect(finder.ConfigErrorf("post", "title", "unknown field")).
			To(MatchError("invalid find options for post.title: unknown field"))
		Expect(finder.ConfigErrorf("post", "", "take must not be %s", "negative")).
			To(MatchError("invalid find options for post: take must not be negative"))
	})

	It("can be matched when wrapped", func() {
		err := fmt.Errorf("failed: %w", finder.ConfigErrorf("post", "id", "bad"))

		var target *finder.ConfigurationError
		Expect(errors.As(err, &target)).To(BeTrue())
		Expect(target.Entity).To(Equal("post"))
		Expect(target.Field).To(Equal("id"))
		Expect(target.Reason).To(Equal("bad"))
	})
})

var _ = Describe("UnsupportedOperatorError", func() {
	It("formats messages", func() {
		err := &finder.UnsupportedOperatorError{Operator: "ilike", Dialect: "sqlite3"}
		Expect(err).To(MatchError("operator ilike is not supported by sqlite3"))
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pkg/finder")
}
