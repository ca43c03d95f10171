package slowhash_test

import (
	"testing"

	. "github.com/bsm/ginkgo/v2"
	. "github.com/bsm/gomega"
	. "github.com/riposo/finder/pkg/slowhash"
)

var _ = Describe("Hash", func() {
	It("supports bcrypt", func() {
		hashed, err := Hash(BCrypt, "s3cret")
		Expect(err).NotTo(HaveOccurred())
		Expect(hashed).To(HavePrefix("$2a$12$"))
		Expect(hashed).To(HaveLen(60))
		Expect(Verify(hashed, "s3cret")).To(BeTrue())
		Expect(Verify(hashed, "nomatch")).To(BeFalse())
	})

	It("supports argon2id", func() {
		hashed, err := Hash(Argon2ID, "s3cret")
		Expect(err).NotTo(HaveOccurred())
		Expect(hashed).To(HavePrefix("$argon2id$v=19$m=65536,t=1,p=2$"))
		Expect(hashed).To(HaveLen(97))
		Expect(Verify(hashed, "s3cret")).To(BeTrue())
		Expect(Verify(hashed, "nomatch")).To(BeFalse())
	})

	It("rejects unknown algorithms", func() {
		_, err := Hash("md5", "s3cret")
		Expect(err).To(MatchError(`unknown hash algorithm "md5"`))
	})
})

var _ = Describe("Verify", func() {
	It("verifies bcrypt 2b", func() {
		Expect(Verify("$2b$12$FveWzQHevRG15avGQHVF0OcpM9kqwtp.84TeOvxM5Wh8JRrI5RmJK", "s3cret")).To(BeTrue())
	})

	It("rejects unsupported hashes", func() {
		_, err := Verify("plain", "plain")
		Expect(err).To(MatchError(`unsupported password hash`))
	})
})

func TestSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "pkg/slowhash")
}
