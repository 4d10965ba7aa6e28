package invitation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/application/invitation"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

const (
	testAdminID  = "00000000-0000-0000-0000-00000000000a"
	testOwnerID  = "00000000-0000-0000-0000-00000000000b"
	testBaseURL  = "https://app.stocker.test"
	testInvEmail = "nuevo@stocker.test"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvitationRepo struct {
	byID map[string]*entity.Invitation
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{byID: make(map[string]*entity.Invitation)}
}

func (r *fakeInvitationRepo) Create(_ context.Context, inv *entity.Invitation) error {
	r.byID[inv.ID] = inv
	return nil
}

func (r *fakeInvitationRepo) GetByID(_ context.Context, id string) (*entity.Invitation, error) {
	return r.byID[id], nil
}

func (r *fakeInvitationRepo) GetByToken(_ context.Context, token string) (*entity.Invitation, error) {
	for _, inv := range r.byID {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, nil
}

func (r *fakeInvitationRepo) List(_ context.Context, ownerID string, _, _ int) ([]*entity.Invitation, error) {
	var out []*entity.Invitation
	for _, inv := range r.byID {
		if ownerID == "" || inv.InvitedBy == ownerID {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *fakeInvitationRepo) Delete(_ context.Context, id string) error {
	delete(r.byID, id)
	return nil
}

// MarkUsed replica el UPDATE condicional: solo consume si seguía sin usar.
func (r *fakeInvitationRepo) MarkUsed(_ context.Context, id string, usedAt time.Time) (bool, error) {
	inv, ok := r.byID[id]
	if !ok || inv.UsedAt != nil {
		return false, nil
	}
	inv.UsedAt = &usedAt
	return true, nil
}

type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) ListSellers(_ context.Context, ownerID string, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		if u.Role == entity.RoleSeller && u.OwnerID != nil && *u.OwnerID == ownerID {
			out = append(out, u)
		}
	}
	return out, nil
}

// fakeMailer captura el último envío para inspeccionarlo.
type fakeMailer struct {
	to  string
	url string
}

func (m *fakeMailer) SendInvitation(_ context.Context, to, registrationURL, _ string, _ time.Time) error {
	m.to = to
	m.url = registrationURL
	return nil
}

func newUseCase(invRepo *fakeInvitationRepo, userRepo *fakeUserRepo, mailer invitation.Mailer) *invitation.UseCase {
	return invitation.NewUseCase(invRepo, userRepo, mailer, invitation.Config{BaseURL: testBaseURL})
}

// ──────────────────────────────────────────────────────────────────────────────
// Emisión de invitaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestInvite_AdminInvitaOwner(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	mailer := &fakeMailer{}
	uc := newUseCase(invRepo, newFakeUserRepo(), mailer)

	out, err := uc.Invite(context.Background(), testAdminID, entity.RoleAdmin, dto.CreateInvitationRequest{
		Email: testInvEmail,
		Role:  entity.RoleOwner,
	})
	require.NoError(t, err)

	assert.Len(t, out.Token, 64, "el token debe ser hex de 32 bytes aleatorios")
	assert.Nil(t, out.OwnerID, "una invitación a owner no queda ligada a nadie")
	assert.Equal(t, testAdminID, out.InvitedBy)
	assert.WithinDuration(t, time.Now().Add(invitation.DefaultTTL), out.ExpiresAt, time.Minute,
		"sin TTL configurado debe aplicarse el default de 7 días")

	assert.Equal(t, testInvEmail, mailer.to)
	assert.Equal(t, testBaseURL+"/register?token="+out.Token, mailer.url,
		"la URL de registro debe armarse sobre la base configurada")
}

func TestInvite_OwnerInvitaSellerLigado(t *testing.T) {
	uc := newUseCase(newFakeInvitationRepo(), newFakeUserRepo(), nil)

	out, err := uc.Invite(context.Background(), testOwnerID, entity.RoleOwner, dto.CreateInvitationRequest{
		Email: testInvEmail,
		Role:  entity.RoleSeller,
	})
	require.NoError(t, err)

	require.NotNil(t, out.OwnerID, "el seller invitado debe quedar ligado al owner")
	assert.Equal(t, testOwnerID, *out.OwnerID)
}

func TestInvite_EmailSeNormaliza(t *testing.T) {
	uc := newUseCase(newFakeInvitationRepo(), newFakeUserRepo(), nil)

	out, err := uc.Invite(context.Background(), testAdminID, entity.RoleAdmin, dto.CreateInvitationRequest{
		Email: "  Nuevo@Stocker.TEST ",
		Role:  entity.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, testInvEmail, out.Email)
}

func TestInvite_CombinacionesProhibidas(t *testing.T) {
	uc := newUseCase(newFakeInvitationRepo(), newFakeUserRepo(), nil)
	ctx := context.Background()

	// Un owner no invita owners.
	_, err := uc.Invite(ctx, testOwnerID, entity.RoleOwner, dto.CreateInvitationRequest{Email: testInvEmail, Role: entity.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un admin no invita sellers (no tendrían owner al que ligarse).
	_, err = uc.Invite(ctx, testAdminID, entity.RoleAdmin, dto.CreateInvitationRequest{Email: testInvEmail, Role: entity.RoleSeller})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un seller no invita a nadie.
	_, err = uc.Invite(ctx, "seller-1", entity.RoleSeller, dto.CreateInvitationRequest{Email: testInvEmail, Role: entity.RoleSeller})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// El rol admin no se otorga por invitación.
	_, err = uc.Invite(ctx, testAdminID, entity.RoleAdmin, dto.CreateInvitationRequest{Email: testInvEmail, Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Invite(ctx, testAdminID, entity.RoleAdmin, dto.CreateInvitationRequest{Email: "", Role: entity.RoleOwner})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro con token
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_FlujoCompleto(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	userRepo := newFakeUserRepo()
	uc := newUseCase(invRepo, userRepo, nil)
	ctx := context.Background()

	inv, err := uc.Invite(ctx, testOwnerID, entity.RoleOwner, dto.CreateInvitationRequest{
		Email: testInvEmail,
		Role:  entity.RoleSeller,
	})
	require.NoError(t, err)

	user, err := uc.Register(ctx, dto.RegisterRequest{
		Token:    inv.Token,
		Email:    testInvEmail,
		Name:     "Vendedor Nuevo",
		Password: "contraseña-larga",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleSeller, user.Role, "el rol viene preasignado por la invitación")
	require.NotNil(t, user.OwnerID)
	assert.Equal(t, testOwnerID, *user.OwnerID, "el seller queda ligado al owner que lo invitó")
	assert.Equal(t, entity.StatusActive, user.Status)

	stored, err := userRepo.GetByEmail(ctx, testInvEmail)
	require.NoError(t, err)
	require.NotNil(t, stored, "la cuenta debe quedar persistida")
	assert.NotEqual(t, "contraseña-larga", stored.PasswordHash, "la contraseña nunca se guarda en claro")

	// El token es de un solo uso: el segundo intento pierde.
	_, err = uc.Register(ctx, dto.RegisterRequest{
		Token:    inv.Token,
		Email:    testInvEmail,
		Password: "otra-contraseña",
	})
	assert.ErrorIs(t, err, domain.ErrInvitationUsed)
}

func TestRegister_TokenDesconocido(t *testing.T) {
	uc := newUseCase(newFakeInvitationRepo(), newFakeUserRepo(), nil)

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Token:    "deadbeef",
		Email:    testInvEmail,
		Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
}

func TestRegister_InvitacionVencida(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	uc := newUseCase(invRepo, newFakeUserRepo(), nil)
	ctx := context.Background()

	// Invitación sembrada directamente, ya vencida.
	invRepo.byID["inv-1"] = &entity.Invitation{
		ID:        "inv-1",
		Email:     testInvEmail,
		Role:      entity.RoleOwner,
		Token:     "token-vencido",
		InvitedBy: testAdminID,
		ExpiresAt: time.Now().Add(-time.Hour),
		CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
	}

	_, err := uc.Register(ctx, dto.RegisterRequest{
		Token:    "token-vencido",
		Email:    testInvEmail,
		Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvitationExpired)
}

func TestRegister_EmailDistintoAlInvitado(t *testing.T) {
	uc := newUseCase(newFakeInvitationRepo(), newFakeUserRepo(), nil)
	ctx := context.Background()

	inv, err := uc.Invite(ctx, testAdminID, entity.RoleAdmin, dto.CreateInvitationRequest{
		Email: testInvEmail,
		Role:  entity.RoleOwner,
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{
		Token:    inv.Token,
		Email:    "otro@stocker.test",
		Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrInvitationEmail)
}

func TestRegister_EmailYaRegistrado(t *testing.T) {
	userRepo := newFakeUserRepo()
	uc := newUseCase(newFakeInvitationRepo(), userRepo, nil)
	ctx := context.Background()

	require.NoError(t, userRepo.Create(ctx, &entity.User{
		ID:    "u-1",
		Email: testInvEmail,
		Role:  entity.RoleOwner,
	}))

	inv, err := uc.Invite(ctx, testAdminID, entity.RoleAdmin, dto.CreateInvitationRequest{
		Email: testInvEmail,
		Role:  entity.RoleOwner,
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{
		Token:    inv.Token,
		Email:    testInvEmail,
		Password: "x",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Revocación
// ──────────────────────────────────────────────────────────────────────────────

func TestRevoke_SoloElEmisorOUnAdmin(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	uc := newUseCase(invRepo, newFakeUserRepo(), nil)
	ctx := context.Background()

	inv, err := uc.Invite(ctx, testOwnerID, entity.RoleOwner, dto.CreateInvitationRequest{
		Email: testInvEmail,
		Role:  entity.RoleSeller,
	})
	require.NoError(t, err)

	// Otro owner no puede revocarla.
	err = uc.Revoke(ctx, "otro-owner", entity.RoleOwner, inv.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Un admin sí.
	err = uc.Revoke(ctx, testAdminID, entity.RoleAdmin, inv.ID)
	require.NoError(t, err)

	got, _ := invRepo.GetByID(ctx, inv.ID)
	assert.Nil(t, got, "la invitación revocada debe desaparecer")
}

func TestRevoke_UsadaNoSeToca(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	uc := newUseCase(invRepo, newFakeUserRepo(), nil)
	ctx := context.Background()

	inv, err := uc.Invite(ctx, testAdminID, entity.RoleAdmin, dto.CreateInvitationRequest{
		Email: testInvEmail,
		Role:  entity.RoleOwner,
	})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{
		Token:    inv.Token,
		Email:    testInvEmail,
		Password: "contraseña-larga",
	})
	require.NoError(t, err)

	err = uc.Revoke(ctx, testAdminID, entity.RoleAdmin, inv.ID)
	assert.ErrorIs(t, err, domain.ErrInvitationUsed)
}

func TestRevoke_Inexistente(t *testing.T) {
	uc := newUseCase(newFakeInvitationRepo(), newFakeUserRepo(), nil)
	err := uc.Revoke(context.Background(), testAdminID, entity.RoleAdmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrInvitationNotFound)
}
