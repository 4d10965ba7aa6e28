package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

var testExpiresAt = time.Date(2026, time.September, 4, 12, 0, 0, 0, time.UTC)

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "dueño de negocio", roleLabel(entity.RoleOwner))
	assert.Equal(t, "vendedor", roleLabel(entity.RoleSeller))
	// Un rol desconocido se muestra tal cual, sin romper el envío.
	assert.Equal(t, "auditor", roleLabel("auditor"))
}

func TestInvitationSubject(t *testing.T) {
	assert.Equal(t, "Invitación a Stocker como vendedor", invitationSubject(entity.RoleSeller))
	assert.Equal(t, "Invitación a Stocker como dueño de negocio", invitationSubject(entity.RoleOwner))
}

func TestInvitationText_IncluyeURLYVencimiento(t *testing.T) {
	url := "https://app.stocker.test/register?token=abc123"
	body := invitationText(url, entity.RoleSeller, testExpiresAt)

	assert.Contains(t, body, url, "el cuerpo debe llevar la URL de registro")
	assert.Contains(t, body, "vendedor")
	assert.Contains(t, body, "04/09/2026", "la fecha de vencimiento va en formato dd/mm/aaaa")
}

func TestInvitationHTML_EscapaLaURL(t *testing.T) {
	// Una URL con & debe quedar escapada dentro del href.
	url := "https://app.stocker.test/register?token=abc&lang=es"
	body := invitationHTML(url, entity.RoleOwner, testExpiresAt)

	assert.Contains(t, body, "token=abc&amp;lang=es", "el & de la URL debe escaparse en HTML")
	assert.Contains(t, body, "dueño de negocio")
	assert.Contains(t, body, "04/09/2026")
	assert.NotContains(t, body, "token=abc&lang=es", "la URL sin escapar no debe aparecer")
}
