package params_test

import (
	"testing"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/riposo/finder/pkg/params"
	"gopkg.in/yaml.v3"
)

var _ = Describe("Value", func() {
	It("has exactly one state", func() {
		Expect(params.Absent().IsAbsent()).To(BeTrue())
		Expect(params.Absent().IsNull()).To(BeFalse())
		Expect(params.Value{}.IsAbsent()).To(BeTrue())

		Expect(params.Null().IsNull()).To(BeTrue())
		Expect(params.Null().IsAbsent()).To(BeFalse())
		Expect(params.Null().IsOperator()).To(BeFalse())

		Expect(params.Equal(1).IsOperator()).To(BeTrue())
		Expect(params.Equal(1).IsNull()).To(BeFalse())

		Expect(params.Nested(nil).IsNested()).To(BeTrue())
		Expect(params.Nested(nil).IsOperator()).To(BeFalse())
	})

	It("converts literals", func() {
		Expect(params.Literal(nil)).To(Equal(params.Null()))
		Expect(params.Literal("A")).To(Equal(params.Equal("A")))
		Expect(params.Literal(params.LessThan(3))).To(Equal(params.LessThan(3)))

		w := params.Where{}.With("likes", 1)
		Expect(params.Literal(w)).To(Equal(params.Nested(w)))
	})

	DescribeTable("operators",
		func(v params.Value, op params.Operator, args []interface{}) {
			Expect(v.IsOperator()).To(BeTrue())
			Expect(v.Operator()).To(Equal(op))
			Expect(v.Args()).To(Equal(args))
		},
		Entry("equal", params.Equal("B"), params.OperatorEQ, []interface{}{"B"}),
		Entry("not", params.Not("B"), params.OperatorNOT, []interface{}{params.Equal("B")}),
		Entry("not null", params.Not(nil), params.OperatorNOT, []interface{}{params.Null()}),
		Entry("lessThan", params.LessThan(1), params.OperatorLT, []interface{}{1}),
		Entry("lessThanOrEqual", params.LessThanOrEqual(1), params.OperatorLTE, []interface{}{1}),
		Entry("moreThan", params.MoreThan(1), params.OperatorGT, []interface{}{1}),
		Entry("moreThanOrEqual", params.MoreThanOrEqual(1), params.OperatorGTE, []interface{}{1}),
		Entry("like", params.Like("%x"), params.OperatorLIKE, []interface{}{"%x"}),
		Entry("ilike", params.ILike("%x"), params.OperatorILIKE, []interface{}{"%x"}),
		Entry("between", params.Between(1, 9), params.OperatorBETWEEN, []interface{}{1, 9}),
		Entry("in", params.In("A", "B"), params.OperatorIN, []interface{}{"A", "B"}),
		Entry("any", params.Any([]string{"A"}), params.OperatorANY, []interface{}{[]string{"A"}}),
		Entry("isNull", params.IsNull(), params.OperatorISNULL, []interface{}(nil)),
		Entry("arrayContains", params.ArrayContains([]int{1}), params.OperatorContains, []interface{}{[]int{1}}),
		Entry("arrayOverlap", params.ArrayOverlap([]int{1}), params.OperatorContainsAny, []interface{}{[]int{1}}),
	)
})

var _ = Describe("Operator", func() {
	It("has names", func() {
		Expect(params.OperatorEQ.String()).To(Equal("equal"))
		Expect(params.OperatorLTE.String()).To(Equal("lessThanOrEqual"))
		Expect(params.OperatorContainsAny.String()).To(Equal("arrayOverlap"))
		Expect(params.Operator(0).String()).To(Equal("unknown"))
	})

	It("validates", func() {
		Expect(params.OperatorIN.IsValid()).To(BeTrue())
		Expect(params.Operator(0).IsValid()).To(BeFalse())
		Expect(params.Operator(200).IsValid()).To(BeFalse())
	})

	It("has arity", func() {
		min, max := params.OperatorISNULL.Arity()
		Expect([]int{min, max}).To(Equal([]int{0, 0}))
		min, max = params.OperatorBETWEEN.Arity()
		Expect([]int{min, max}).To(Equal([]int{2, 2}))
		min, max = params.OperatorIN.Arity()
		Expect([]int{min, max}).To(Equal([]int{1, -1}))
		min, max = params.OperatorNOT.Arity()
		Expect([]int{min, max}).To(Equal([]int{1, 1}))
	})
})

var _ = Describe("Where", func() {
	It("builds", func() {
		w := params.Where{}.With("type", "A").With("text", nil).With("id", params.In(1, 2))
		Expect(w).To(Equal(params.Where{
			{Field: "type", Value: params.Equal("A")},
			{Field: "text", Value: params.Null()},
			{Field: "id", Value: params.In(1, 2)},
		}))
		Expect(w.Get("type")).To(Equal(params.Equal("A")))
		Expect(w.Get("title").IsAbsent()).To(BeTrue())
	})

	It("converts maps", func() {
		Expect(params.FromMap(nil)).To(BeNil())
		Expect(params.FromMap(map[string]interface{}{
			"type":     "A",
			"counters": map[string]interface{}{"likes": params.MoreThan(3)},
			"id":       nil,
		})).To(Equal(params.Where{
			{Field: "counters", Value: params.Nested(params.Where{{Field: "likes", Value: params.MoreThan(3)}})},
			{Field: "id", Value: params.Null()},
			{Field: "type", Value: params.Equal("A")},
		}))
	})
})

var _ = Describe("FindOptions", func() {
	a := params.Where{}.With("type", "A")
	b := params.Where{}.With("type", "B")

	It("combines conditions", func() {
		Expect((&params.FindOptions{}).Conditions()).To(BeNil())
		Expect((&params.FindOptions{Where: a}).Conditions()).To(Equal([]params.Where{a}))
		Expect((&params.FindOptions{Or: []params.Where{a, b}}).Conditions()).To(Equal([]params.Where{a, b}))
		Expect((&params.FindOptions{Where: a, Or: []params.Where{b}}).Conditions()).To(Equal([]params.Where{a, b}))
	})
})

var _ = Describe("ParseWhere", func() {
	It("parses objects", func() {
		Expect(params.ParseWhere(`{"type":"A","id":{"$gte":2},"text":null,"score":1.5}`)).To(Equal([]params.Where{{
			{Field: "type", Value: params.Equal("A")},
			{Field: "id", Value: params.MoreThanOrEqual(int64(2))},
			{Field: "text", Value: params.Null()},
			{Field: "score", Value: params.Equal(1.5)},
		}}))
	})

	It("parses alternatives", func() {
		Expect(params.ParseWhere(`[{"type":"A"},{"type":"B"}]`)).To(Equal([]params.Where{
			{{Field: "type", Value: params.Equal("A")}},
			{{Field: "type", Value: params.Equal("B")}},
		}))
	})

	It("parses blanks", func() {
		Expect(params.ParseWhere(``)).To(BeNil())
		Expect(params.ParseWhere(`{}`)).To(Equal([]params.Where{nil}))
	})

	It("parses operators", func() {
		Expect(params.ParseWhere(`{
			"a": {"$in": ["A", "B"]},
			"b": {"$between": [1, 5]},
			"c": {"$not": "A"},
			"d": {"$not": {"$like": "x%"}},
			"e": {"$not": null},
			"f": {"$isNull": true},
			"g": {"$isNull": false},
			"h": {"$any": ["x", "y"]},
			"i": {"$in": 3}
		}`)).To(Equal([]params.Where{{
			{Field: "a", Value: params.In("A", "B")},
			{Field: "b", Value: params.Between(int64(1), int64(5))},
			{Field: "c", Value: params.Not("A")},
			{Field: "d", Value: params.Not(params.Like("x%"))},
			{Field: "e", Value: params.Not(nil)},
			{Field: "f", Value: params.IsNull()},
			{Field: "g", Value: params.Not(params.IsNull())},
			{Field: "h", Value: params.Any([]interface{}{"x", "y"})},
			{Field: "i", Value: params.In(int64(3))},
		}}))
	})

	It("parses nested objects", func() {
		Expect(params.ParseWhere(`{"counters":{"likes":{"$gt":3},"views":9}}`)).To(Equal([]params.Where{{
			{Field: "counters", Value: params.Nested(params.Where{
				{Field: "likes", Value: params.MoreThan(int64(3))},
				{Field: "views", Value: params.Equal(int64(9))},
			})},
		}}))
	})

	It("rejects bad input", func() {
		_, err := params.ParseWhere(`{"a":`)
		Expect(err).To(MatchError("invalid JSON"))

		_, err = params.ParseWhere(`"a"`)
		Expect(err).To(MatchError("where must be an object or an array of objects"))

		_, err = params.ParseWhere(`[{"a":1},2]`)
		Expect(err).To(MatchError("where alternatives must be objects"))

		_, err = params.ParseWhere(`{"a":[1,2]}`)
		Expect(err).To(MatchError(`field "a": arrays must be wrapped in an operator`))

		_, err = params.ParseWhere(`{"a":{"$near":1}}`)
		Expect(err).To(MatchError(`field "a": unknown operator "$near"`))
	})
})

var _ = Describe("ParseOrder", func() {
	It("parses", func() {
		Expect(params.ParseOrder(`{"type":"ASC","id":-1}`)).To(Equal(params.Order{
			{Field: "type", Direction: "ASC"},
			{Field: "id", Direction: "-1"},
		}))
		Expect(params.ParseOrder(``)).To(BeNil())
	})

	It("rejects bad input", func() {
		_, err := params.ParseOrder(`[1]`)
		Expect(err).To(MatchError("order must be an object"))

		_, err = params.ParseOrder(`{"id":true}`)
		Expect(err).To(MatchError(`invalid direction for "id"`))
	})
})

var _ = Describe("Order", func() {
	It("converts sort orders", func() {
		Expect(params.OrderOf(nil)).To(BeNil())
		Expect(params.OrderOf(params.ParseSort("type,-id"))).To(Equal(params.Order{
			{Field: "type", Direction: "ASC"},
			{Field: "id", Direction: "DESC"},
		}))
	})

	DescribeTable("ParseDirection",
		func(token string, desc bool) {
			Expect(params.ParseDirection(token)).To(Equal(desc))
		},
		Entry("asc", "asc", false),
		Entry("ASC", "ASC", false),
		Entry("ascending", "Ascending", false),
		Entry("1", "1", false),
		Entry("desc", "desc", true),
		Entry("DESC", "DESC", true),
		Entry("descending", "descending", true),
		Entry("-1", "-1", true),
	)

	It("rejects bad directions", func() {
		_, err := params.ParseDirection("up")
		Expect(err).To(MatchError(`invalid direction "up"`))
	})
})

var _ = Describe("ParseSort", func() {
	It("parses", func() {
		Expect(params.ParseSort("")).To(BeEmpty())
		Expect(params.ParseSort("id,-title, type ,-,,id")).To(Equal([]params.SortOrder{
			{Field: "id"},
			{Field: "title", Descending: true},
			{Field: "type"},
		}))
	})
})

var _ = Describe("ValuePolicy", func() {
	It("parses text", func() {
		var np params.NullPolicy
		Expect(np.UnmarshalText([]byte("sql-null"))).To(Succeed())
		Expect(np).To(Equal(params.NullAsSQL))
		Expect(np.UnmarshalText([]byte("throw"))).To(Succeed())
		Expect(np).To(Equal(params.NullThrow))
		Expect(np.UnmarshalText([]byte("ignore"))).To(Succeed())
		Expect(np).To(Equal(params.NullIgnore))
		Expect(np.UnmarshalText([]byte("bad"))).To(MatchError(`invalid null policy "bad"`))

		var up params.UndefinedPolicy
		Expect(up.UnmarshalText([]byte("throw"))).To(Succeed())
		Expect(up).To(Equal(params.UndefinedThrow))
		Expect(up.UnmarshalText([]byte("bad"))).To(MatchError(`invalid undefined policy "bad"`))
	})

	It("formats text", func() {
		Expect(params.NullAsSQL.MarshalText()).To(Equal([]byte("sql-null")))
		Expect(params.UndefinedIgnore.String()).To(Equal("ignore"))
		Expect(params.NullPolicy(9).String()).To(Equal("NullPolicy(9)"))
	})

	It("defaults to ignore", func() {
		var p params.ValuePolicy
		Expect(p.Null).To(Equal(params.NullIgnore))
		Expect(p.Undefined).To(Equal(params.UndefinedIgnore))
	})

	It("parses YAML", func() {
		var p params.ValuePolicy
		Expect(yaml.Unmarshal([]byte("null: sql-null\nundefined: throw\n"), &p)).To(Succeed())
		Expect(p).To(Equal(params.ValuePolicy{Null: params.NullAsSQL, Undefined: params.UndefinedThrow}))

		p = params.ValuePolicy{}
		Expect(yaml.Unmarshal([]byte(`"null": throw`), &p)).To(Succeed())
		Expect(p).To(Equal(params.ValuePolicy{Null: params.NullThrow}))

		p = params.ValuePolicy{Undefined: params.UndefinedThrow}
		Expect(yaml.Unmarshal([]byte("null: ~"), &p)).To(Succeed())
		Expect(p).To(Equal(params.ValuePolicy{Undefined: params.UndefinedThrow}))
	})

	It("rejects bad YAML", func() {
		var p params.ValuePolicy
		Expect(yaml.Unmarshal([]byte("null: bad"), &p)).To(MatchError(`line 1: invalid null policy "bad"`))
		Expect(yaml.Unmarshal([]byte("other: throw"), &p)).To(MatchError(`line 1: unknown value policy "other"`))
		Expect(yaml.Unmarshal([]byte("- throw"), &p)).To(MatchError(`line 1: value policy must be a mapping`))
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pkg/params")
}
