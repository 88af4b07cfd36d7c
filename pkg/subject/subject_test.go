package subject

import (
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

const registryFixture = `CSCI;Computer Science;abstract science;4682b4

MATH;Mathematics;abstract science;2e8b57
HISP;Hispanic Studies;language;cd5c5c
`

func TestNewRegistry(t *testing.T) {
	g := NewGomegaWithT(t)
	registry, err := NewRegistry(strings.NewReader(registryFixture))
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(registry.Subjects()).To(Equal([]string{"CSCI", "HISP", "MATH"}))

	info, exists := registry.Info("CSCI")
	g.Expect(exists).To(BeTrue())
	g.Expect(info).To(Equal(Info{Name: "Computer Science", Category: CategoryAbstractScience, Color: "4682b4"}))

	_, exists = registry.Info("VISA")
	g.Expect(exists).To(BeFalse())
}

func TestNewRegistryRejectsShortLines(t *testing.T) {
	g := NewGomegaWithT(t)
	_, err := NewRegistry(strings.NewReader("CSCI;Computer Science\n"))
	g.Expect(err).To(HaveOccurred())
}

func TestParseCategory(t *testing.T) {
	g := NewGomegaWithT(t)
	for _, name := range []string{"language", "culture", "abstract science", "physical science", "other"} {
		category, err := ParseCategory(name)
		g.Expect(err).ToNot(HaveOccurred())
		g.Expect(category.String()).To(Equal(name))
	}
	_, err := ParseCategory("humanities")
	g.Expect(err).To(HaveOccurred())
}
