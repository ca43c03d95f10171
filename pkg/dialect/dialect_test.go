package dialect_test

import (
	"database/sql/driver"
	"testing"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/lib/pq"
	"github.com/riposo/finder/pkg/dialect"
	"github.com/riposo/finder/pkg/params"
)

var _ = Describe("Dialect", func() {
	It("quotes identifiers", func() {
		Expect(dialect.Postgres.QuoteIdent("post")).To(Equal(`"post"`))
		Expect(dialect.Postgres.QuoteIdent(`we"ird`)).To(Equal(`"we""ird"`))
		Expect(dialect.MySQL.QuoteIdent("post")).To(Equal("`post`"))
		Expect(dialect.MySQL.QuoteIdent("we`ird")).To(Equal("`we``ird`"))
	})

	It("checks operator support", func() {
		Expect(dialect.Postgres.Supports(params.OperatorILIKE)).To(BeTrue())
		Expect(dialect.Postgres.Supports(params.OperatorContainsAny)).To(BeTrue())
		Expect(dialect.SQLite.Supports(params.OperatorLIKE)).To(BeTrue())
		Expect(dialect.SQLite.Supports(params.OperatorILIKE)).To(BeFalse())
		Expect(dialect.SQLite.Supports(params.OperatorANY)).To(BeFalse())
		Expect(dialect.MySQL.Supports(params.OperatorContains)).To(BeFalse())
	})

	It("converts array values", func() {
		v := dialect.Postgres.ArrayValue([]string{"a", "b"})
		Expect(v).To(BeAssignableToTypeOf(&pq.StringArray{}))
		Expect(v.(driver.Valuer).Value()).To(Equal(`{"a","b"}`))
		Expect(dialect.SQLite.ArrayValue).To(BeNil())
	})

	It("registers", func() {
		Expect(dialect.Names()).To(Equal([]string{"mysql", "postgres", "sqlite3"}))
		Expect(dialect.Get("postgres")).To(BeIdenticalTo(dialect.Postgres))
		Expect(dialect.Get("sqlite3")).To(BeIdenticalTo(dialect.SQLite))

		_, err := dialect.Get("oracle")
		Expect(err).To(MatchError(`unknown dialect "oracle"`))

		Expect(func() { dialect.Register(&dialect.Dialect{Name: "postgres"}) }).To(Panic())
	})

	It("has names", func() {
		Expect(dialect.SQLite.String()).To(Equal("sqlite3"))
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pkg/dialect")
}
