package docgen

import (
	"strings"
	"time"

	"estatedocs/internal/domain/models"
)

// defaultPropertyPowers are the powers granted when the grantor does not
// restrict them, tracking the Substitute Decisions Act defaults.
var defaultPropertyPowers = []string{
	"operate my bank accounts and conduct banking transactions",
	"buy, sell, lease, and otherwise deal with my real property",
	"manage my investments and securities",
	"pay my bills and collect money owed to me",
	"file my tax returns and deal with tax authorities",
	"commence, defend, and settle legal proceedings on my behalf",
}

// generatePOAProperty renders a power of attorney for property. Section
// order is fixed: appointment, continuing declaration, enumerated powers,
// optional restrictions, signature block.
func generatePOAProperty(form models.FormData, now time.Time) string {
	var b strings.Builder

	writeHeading(&b, models.DocumentTypePOAProperty.Title(), now)
	writeDeclarant(&b, form, "Grantor")

	b.WriteString("1. APPOINTMENT OF ATTORNEY(S) FOR PROPERTY\n\n")
	b.WriteString("I appoint the following person(s) as my attorney(s) for property:\n\n")
	writePersonList(&b, form, models.FieldAttorneys, "attorneys")
	b.WriteString("\nIf more than one attorney is named, they may act jointly and severally.\n\n")

	b.WriteString("2. CONTINUING POWER\n\n")
	if strings.EqualFold(form.Field("continuing"), "no") {
		b.WriteString("This power of attorney is NOT a continuing power of attorney and may not be exercised during any incapacity of mine to manage property.\n\n")
	} else {
		b.WriteString("This is a continuing power of attorney for property under the Substitute Decisions Act, 1992, and may be exercised during any incapacity of mine to manage property.\n\n")
	}

	b.WriteString("3. POWERS GRANTED\n\n")
	b.WriteString("Subject to any restrictions below, my attorney(s) may do on my behalf anything in respect of property that I could do if capable, including the authority to:\n\n")
	for i, power := range defaultPropertyPowers {
		b.WriteString("  ")
		b.WriteString(letterFor(i))
		b.WriteString(". ")
		b.WriteString(power)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if restrictions := strings.TrimSpace(form.Field("restrictions")); restrictions != "" {
		b.WriteString("4. RESTRICTIONS\n\n")
		b.WriteString("The authority of my attorney(s) is subject to the following restrictions:\n")
		b.WriteString(restrictions)
		b.WriteString("\n\n")
	}

	writeSignatureBlock(&b, form, "Grantor")

	return b.String()
}

// letterFor returns the lettered list marker for index i (a, b, c, ...).
func letterFor(i int) string {
	return string(rune('a' + i))
}
