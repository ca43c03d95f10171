package schema_test

import (
	"encoding/json"
	"strings"
	"testing"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/riposo/finder/pkg/schema"
)

var _ = Describe("Entity", func() {
	var subject *schema.Entity

	BeforeEach(func() {
		subject = schema.MustEntity("photo", "",
			schema.Column{Field: "id", Primary: true},
			schema.Column{Field: "name"},
			schema.Column{Field: "counters.likes"},
			schema.Column{Field: "counters.views", Name: "view_count"},
		)
	})

	It("inits", func() {
		Expect(subject.Name).To(Equal("photo"))
		Expect(subject.Table).To(Equal("photo"))
		Expect(subject.Fields()).To(Equal([]string{"id", "name", "counters.likes", "counters.views"}))
	})

	It("looks up columns", func() {
		column := func(field string) schema.Column {
			col, ok := subject.Column(field)
			Expect(ok).To(BeTrue())
			return col
		}

		Expect(column("id")).To(Equal(schema.Column{Field: "id", Name: "id", Primary: true}))
		Expect(column("counters.likes")).To(Equal(schema.Column{Field: "counters.likes", Name: "counters_likes"}))
		Expect(column("counters.views")).To(Equal(schema.Column{Field: "counters.views", Name: "view_count"}))

		_, ok := subject.Column("counters")
		Expect(ok).To(BeFalse())
		_, ok = subject.Column("title")
		Expect(ok).To(BeFalse())
	})

	It("detects embedded groups", func() {
		Expect(subject.IsEmbedded("counters")).To(BeTrue())
		Expect(subject.IsEmbedded("name")).To(BeFalse())
		Expect(subject.IsEmbedded("counters.likes")).To(BeFalse())
	})

	It("validates", func() {
		_, err := schema.NewEntity("", "x", schema.Column{Field: "id"})
		Expect(err).To(MatchError("entity name is required"))

		_, err = schema.NewEntity("post", "")
		Expect(err).To(MatchError("entity post has no columns"))

		_, err = schema.NewEntity("post", "", schema.Column{Field: "id"}, schema.Column{Field: "id"})
		Expect(err).To(MatchError(`entity post has a duplicate field "id"`))

		_, err = schema.NewEntity("post", "", schema.Column{Field: "meta."})
		Expect(err).To(MatchError(`entity post has a column with an invalid field "meta."`))

		_, err = schema.NewEntity("post", "", schema.Column{Field: "meta"}, schema.Column{Field: "meta.x"})
		Expect(err).To(MatchError(`entity post uses "meta" both as a column and an embedded group`))
	})

	It("registers", func() {
		ent := schema.MustEntity("schema_test_entity", "", schema.Column{Field: "id"})
		schema.Register(ent)
		Expect(func() { schema.Register(ent) }).To(Panic())

		found, ok := schema.Lookup("schema_test_entity")
		Expect(ok).To(BeTrue())
		Expect(found).To(BeIdenticalTo(ent))

		_, ok = schema.Lookup("unknown")
		Expect(ok).To(BeFalse())

		var names []string
		schema.Each(func(e *schema.Entity) { names = append(names, e.Name) })
		Expect(names).To(ContainElement("schema_test_entity"))
	})
})

var _ = Describe("LoadYAML", func() {
	It("loads entities", func() {
		ents, err := schema.LoadYAML(strings.NewReader(`
entities:
  - name: post
    table: posts
    columns:
      - { field: id, primary: true }
      - { field: title }
  - name: photo
    columns:
      - { field: id }
      - { field: counters.likes, name: likes }
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(ents).To(HaveLen(2))
		Expect(ents[0].Name).To(Equal("post"))
		Expect(ents[0].Table).To(Equal("posts"))
		Expect(ents[0].Fields()).To(Equal([]string{"id", "title"}))
		Expect(ents[1].Table).To(Equal("photo"))
		col, ok := ents[1].Column("counters.likes")
		Expect(ok).To(BeTrue())
		Expect(col).To(Equal(schema.Column{Field: "counters.likes", Name: "likes"}))
	})

	It("accepts blank documents", func() {
		Expect(schema.LoadYAML(strings.NewReader(""))).To(BeEmpty())
	})

	It("fails on bad input", func() {
		_, err := schema.LoadYAML(strings.NewReader(`entities: 3`))
		Expect(err).To(MatchError(ContainSubstring("unable to parse entities")))

		_, err = schema.LoadYAML(strings.NewReader("entities:\n  - name: post\n"))
		Expect(err).To(MatchError("entity post has no columns"))
	})
})

var _ = Describe("Record", func() {
	var subject *schema.Record

	BeforeEach(func() {
		subject = schema.NewRecord(
			[]string{"id", "title", "counters.likes", "counters.views", "note"},
			[]interface{}{int64(1), "About post #1", int64(4), int64(9), nil},
		)
	})

	It("exposes values", func() {
		Expect(subject.Len()).To(Equal(5))
		Expect(subject.Fields()).To(Equal([]string{"id", "title", "counters.likes", "counters.views", "note"}))
		title, ok := subject.Get("title")
		Expect(ok).To(BeTrue())
		Expect(title).To(Equal("About post #1"))

		_, ok = subject.Get("text")
		Expect(ok).To(BeFalse())

		Expect(subject.Map()).To(Equal(map[string]interface{}{
			"id":             int64(1),
			"title":          "About post #1",
			"counters.likes": int64(4),
			"counters.views": int64(9),
			"note":           nil,
		}))
	})

	It("marshals JSON", func() {
		data, err := json.Marshal(subject)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`{"id":1,"title":"About post #1","counters":{"likes":4,"views":9},"note":null}`))
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pkg/schema")
}
