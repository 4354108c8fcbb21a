package docgen

import (
	"strings"
	"time"

	"estatedocs/internal/domain/models"
)

// defaultCarePowers enumerate the personal-care decision areas under the
// Substitute Decisions Act.
var defaultCarePowers = []string{
	"health care and medical treatment",
	"nutrition and diet",
	"shelter and accommodation",
	"clothing",
	"hygiene",
	"safety",
}

// defaultHealthcareWishes is written when the grantor leaves the wishes field
// empty. The sentence is legally meaningful: it directs the attorney to the
// best-interests standard rather than leaving the section silent.
const defaultHealthcareWishes = "I wish to receive all care and treatment that my attorney, acting in consultation with my health care providers, considers to be in my best interests."

// generatePOACare renders a power of attorney for personal care. Section
// order is fixed: appointment, enumerated care powers, healthcare wishes,
// optional special instructions, signature block.
func generatePOACare(form models.FormData, now time.Time) string {
	var b strings.Builder

	writeHeading(&b, models.DocumentTypePOACare.Title(), now)
	writeDeclarant(&b, form, "Grantor")

	b.WriteString("1. APPOINTMENT OF ATTORNEY(S) FOR PERSONAL CARE\n\n")
	b.WriteString("I appoint the following person(s) as my attorney(s) for personal care:\n\n")
	writePersonList(&b, form, models.FieldAttorneys, "attorneys")
	b.WriteString("\nIf more than one attorney is named, they may act jointly and severally.\n\n")

	b.WriteString("2. AUTHORITY\n\n")
	b.WriteString("My attorney(s) may make on my behalf any decision concerning my personal care that I could make if capable, including decisions about:\n\n")
	for i, power := range defaultCarePowers {
		b.WriteString("  ")
		b.WriteString(letterFor(i))
		b.WriteString(". ")
		b.WriteString(power)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("3. HEALTHCARE WISHES\n\n")
	wishes := strings.TrimSpace(form.Field("healthcareWishes"))
	if wishes == "" {
		wishes = defaultHealthcareWishes
	}
	b.WriteString(wishes)
	b.WriteString("\n\n")

	if instructions := strings.TrimSpace(form.Field("specialInstructions")); instructions != "" {
		b.WriteString("SPECIAL INSTRUCTIONS\n\n")
		b.WriteString(instructions)
		b.WriteString("\n\n")
	}

	writeSignatureBlock(&b, form, "Grantor")

	return b.String()
}
