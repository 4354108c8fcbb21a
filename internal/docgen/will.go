package docgen

import (
	"fmt"
	"strings"
	"time"

	"estatedocs/internal/domain/models"
)

// generateWill renders a last will and testament. Section order is fixed:
// revocation, executors, distribution, residuary estate, optional special
// instructions, signature and witness blocks.
func generateWill(form models.FormData, now time.Time) string {
	var b strings.Builder

	writeHeading(&b, models.DocumentTypeWill.Title(), now)
	writeDeclarant(&b, form, "Testator")

	b.WriteString("1. REVOCATION\n\n")
	b.WriteString("I revoke all wills and codicils previously made by me.\n\n")

	b.WriteString("2. APPOINTMENT OF EXECUTORS\n\n")
	b.WriteString("I appoint the following person(s) as the executor(s) and trustee(s) of my estate:\n\n")
	writePersonList(&b, form, models.FieldExecutors, "executors")
	b.WriteString("\nIf an executor named above is unwilling or unable to act, the remaining executor(s) may act alone.\n\n")

	b.WriteString("3. DISTRIBUTION OF MY ESTATE\n\n")
	b.WriteString("I direct my executors to distribute my estate among the following beneficiaries:\n\n")
	writePersonList(&b, form, models.FieldBeneficiaries, "beneficiaries")
	b.WriteString("\n")

	if bequests := strings.TrimSpace(form.Field("specificBequests")); bequests != "" {
		b.WriteString("Specific bequests:\n")
		b.WriteString(bequests)
		b.WriteString("\n\n")
	}

	b.WriteString("4. RESIDUARY ESTATE\n\n")
	fmt.Fprintf(&b, "I give the residue of my estate to %s, to be divided in equal shares among the beneficiaries named above if no residuary beneficiary is designated.\n\n",
		fieldOr(form, "residuaryBeneficiary", "[RESIDUARY BENEFICIARY]"))

	if guardian := strings.TrimSpace(form.Field("guardianName")); guardian != "" {
		b.WriteString("5. GUARDIAN OF MINOR CHILDREN\n\n")
		fmt.Fprintf(&b, "I appoint %s as guardian of any of my children who are minors at my death.\n\n", guardian)
	}

	if instructions := strings.TrimSpace(form.Field("specialInstructions")); instructions != "" {
		b.WriteString("SPECIAL INSTRUCTIONS\n\n")
		b.WriteString(instructions)
		b.WriteString("\n\n")
	}

	writeSignatureBlock(&b, form, "Testator")

	return b.String()
}
