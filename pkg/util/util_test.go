package util_test

import (
	"testing"

	"github.com/riposo/finder/pkg/util"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
)

var _ = Describe("SplitFields", func() {
	split := func(s, sep string) []string {
		var res []string
		util.SplitFields(s, sep, func(part string) {
			res = append(res, part)
		})
		return res
	}

	It("splits", func() {
		Expect(split("", ",")).To(BeNil())
		Expect(split("a", ",")).To(Equal([]string{"a"}))
		Expect(split("a,b,,c", ",")).To(Equal([]string{"a", "b", "c"}))
		Expect(split(" a , b ,", ",")).To(Equal([]string{"a", "b"}))
		Expect(split(" , ", ",")).To(BeNil())
		Expect(split("counters.likes", ".")).To(Equal([]string{"counters", "likes"}))
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pkg/util")
}
