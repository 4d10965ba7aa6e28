package mailer

import (
	"fmt"
	"html"
	"time"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

const dateLayout = "02/01/2006"

func roleLabel(role string) string {
	switch role {
	case entity.RoleOwner:
		return "dueño de negocio"
	case entity.RoleSeller:
		return "vendedor"
	default:
		return role
	}
}

func invitationSubject(role string) string {
	return fmt.Sprintf("Invitación a Stocker como %s", roleLabel(role))
}

func invitationText(registrationURL, role string, expiresAt time.Time) string {
	return fmt.Sprintf(
		"Hola,\n\n"+
			"Te invitaron a unirte a Stocker como %s.\n"+
			"Completá tu registro en el siguiente enlace:\n\n%s\n\n"+
			"La invitación vence el %s. Si no esperabas este correo, ignoralo.\n",
		roleLabel(role), registrationURL, expiresAt.Format(dateLayout),
	)
}

func invitationHTML(registrationURL, role string, expiresAt time.Time) string {
	url := html.EscapeString(registrationURL)
	return fmt.Sprintf(
		`<p>Hola,</p>
<p>Te invitaron a unirte a <strong>Stocker</strong> como %s.</p>
<p><a href="%s">Completar registro</a></p>
<p>La invitación vence el %s. Si no esperabas este correo, ignoralo.</p>`,
		html.EscapeString(roleLabel(role)), url, expiresAt.Format(dateLayout),
	)
}
