package config_test

import (
	"os"
	"testing"
	"time"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	"github.com/riposo/finder/internal/config"
	"github.com/riposo/finder/pkg/params"
)

var _ = Describe("Config", func() {
	setenv := func(key, value string) {
		Expect(os.Setenv(key, value)).To(Succeed())
		DeferCleanup(os.Unsetenv, key)
	}

	It("applies defaults", func() {
		conf, err := config.Parse("")
		Expect(err).NotTo(HaveOccurred())
		Expect(conf.Database.URL).To(Equal("sqlite3::memory:"))
		Expect(conf.Dialect).To(Equal("postgres"))
		Expect(conf.Entities).To(Equal("entities.yml"))
		Expect(conf.Where).To(Equal(params.ValuePolicy{}))
		Expect(conf.Query.Log).To(BeFalse())
		Expect(conf.Query.Timeout).To(Equal(30 * time.Second))
		Expect(conf.Query.MaxTake).To(Equal(10_000))
		Expect(conf.Batch.MaxRequests).To(Equal(25))
		Expect(conf.Server.Address).To(Equal(":8888"))
		Expect(conf.Server.ShutdownTimeout).To(Equal(5 * time.Second))
		Expect(conf.Server.RequestID).To(Equal("nanoid"))
		Expect(conf.Auth.Users).To(BeEmpty())
		Expect(conf.CORS.Origins).To(Equal([]string{"*"}))
		Expect(conf.CORS.MaxAge).To(Equal(time.Hour))
	})

	It("parses env", func() {
		setenv("FINDER_DATABASE_URL", "sqlite3:///tmp/finder.db")
		setenv("FINDER_WHERE_NULL", "throw")
		setenv("FINDER_WHERE_UNDEFINED", "throw")
		setenv("FINDER_QUERY_TIMEOUT", "1m")
		setenv("FINDER_SERVER_READ_TIMEOUT", "10s")
		setenv("FINDER_CORS_ORIGINS", "http://a.test,http://b.test")
		setenv("FINDER_AUTH_USERS", "alice:$2a$12$hash")

		conf, err := config.Parse("")
		Expect(err).NotTo(HaveOccurred())
		Expect(conf.Database.URL).To(Equal("sqlite3:///tmp/finder.db"))
		Expect(conf.Dialect).To(Equal("postgres"))
		Expect(conf.Where).To(Equal(params.ValuePolicy{
			Null:      params.NullThrow,
			Undefined: params.UndefinedThrow,
		}))
		Expect(conf.Query.Timeout).To(Equal(time.Minute))
		Expect(conf.Server.ReadTimeout).To(Equal(10 * time.Second))
		Expect(conf.CORS.Origins).To(Equal([]string{"http://a.test", "http://b.test"}))
		Expect(conf.Auth.Users).To(Equal(map[string]string{"alice": "$2a$12$hash"}))
	})

	It("parses files", func() {
		conf, err := config.Parse("testdata/config.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(conf.Database.URL).To(Equal("postgres://localhost/finder_test"))
		Expect(conf.Dialect).To(Equal("sqlite3"))
		Expect(conf.Entities).To(Equal("testdata/entities.yml"))
		Expect(conf.Where.Null).To(Equal(params.NullAsSQL))
		Expect(conf.Where.Undefined).To(Equal(params.UndefinedIgnore))
		Expect(conf.Query.Log).To(BeTrue())
		Expect(conf.Query.Timeout).To(Equal(5 * time.Second))
		Expect(conf.Server.Address).To(Equal(":8889"))
		Expect(conf.Server.ShutdownTimeout).To(Equal(10 * time.Second))
		Expect(conf.Server.RequestID).To(Equal("uuid"))
		Expect(conf.Auth.Users).To(Equal(map[string]string{"alice": "$2a$12$hash"}))
		Expect(conf.CORS.Origins).To(Equal([]string{"*"}))
	})

	It("prioritises env", func() {
		setenv("FINDER_DIALECT", "mysql")

		conf, err := config.Parse("testdata/config.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(conf.Dialect).To(Equal("mysql"))
		Expect(conf.Database.URL).To(Equal("postgres://localhost/finder_test"))
	})

	It("fails on invalid values", func() {
		setenv("FINDER_WHERE_NULL", "maybe")

		_, err := config.Parse("")
		Expect(err).To(MatchError(ContainSubstring(`invalid null policy "maybe"`)))
	})

	It("fails on missing files", func() {
		_, err := config.Parse("testdata/missing.yml")
		Expect(err).To(MatchError(ContainSubstring(`unable to read config file "testdata/missing.yml"`)))
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "internal/config")
}
