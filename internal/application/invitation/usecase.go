// Package invitation implementa el flujo de registro por invitación: un
// token de un solo uso, con vencimiento, enviado por email, que permite
// crear una cuenta con rol preasignado (owner o seller).
package invitation

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stocker-app/stocker-api/internal/application/auth"
	"github.com/stocker-app/stocker-api/internal/application/dto"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// tokenBytes largo del token aleatorio (32 bytes = 64 hex).
const tokenBytes = 32

// DefaultTTL vigencia por defecto de una invitación.
const DefaultTTL = 7 * 24 * time.Hour

// Mailer envía la invitación al destinatario. La implementación SMTP vive en
// infrastructure/mailer; en desarrollo puede no haber mailer (nil) y la URL
// de registro se registra en el log.
type Mailer interface {
	SendInvitation(ctx context.Context, to, registrationURL, role string, expiresAt time.Time) error
}

// Config parámetros del flujo de invitaciones.
type Config struct {
	// BaseURL base de la URL de registro, ej. https://app.stocker.io
	BaseURL string
	// TTL vigencia del token; si es cero se usa DefaultTTL.
	TTL time.Duration
}

// UseCase casos de uso de invitaciones y registro.
type UseCase struct {
	invRepo  repository.InvitationRepository
	userRepo repository.UserRepository
	mailer   Mailer
	cfg      Config
}

// NewUseCase construye el caso de uso. mailer puede ser nil (modo dev).
func NewUseCase(invRepo repository.InvitationRepository, userRepo repository.UserRepository, mailer Mailer, cfg Config) *UseCase {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &UseCase{invRepo: invRepo, userRepo: userRepo, mailer: mailer, cfg: cfg}
}

// Invite emite una invitación. Un admin invita owners; un owner invita
// sellers, que quedan ligados a él. Cualquier otra combinación se rechaza.
func (uc *UseCase) Invite(ctx context.Context, actorID, actorRole string, in dto.CreateInvitationRequest) (*dto.InvitationResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	var ownerID *string
	switch in.Role {
	case entity.RoleOwner:
		if actorRole != entity.RoleAdmin {
			return nil, domain.ErrForbidden
		}
	case entity.RoleSeller:
		if actorRole != entity.RoleOwner {
			return nil, domain.ErrForbidden
		}
		ownerID = &actorID
	default:
		return nil, domain.ErrInvalidInput
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	now := time.Now()
	inv := &entity.Invitation{
		ID:        uuid.New().String(),
		Email:     email,
		Role:      in.Role,
		Token:     token,
		OwnerID:   ownerID,
		InvitedBy: actorID,
		ExpiresAt: now.Add(uc.cfg.TTL),
		CreatedAt: now,
	}
	if err := uc.invRepo.Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("guardar invitación: %w", err)
	}

	url := uc.registrationURL(token)
	if uc.mailer == nil {
		log.Info().Str("email", email).Str("url", url).Msg("mailer no configurado: invitación sin enviar")
	} else if err := uc.mailer.SendInvitation(ctx, email, url, inv.Role, inv.ExpiresAt); err != nil {
		// La invitación ya quedó emitida; el token viaja en la respuesta.
		log.Warn().Err(err).Str("email", email).Msg("no se pudo enviar el email de invitación")
	} else {
		log.Info().Str("email", email).Str("role", inv.Role).Msg("invitación enviada")
	}

	out := toResponse(inv)
	out.Token = inv.Token
	return out, nil
}

// List lista las invitaciones visibles para el alcance dado
// (admin: todas; owner: las suyas).
func (uc *UseCase) List(ctx context.Context, scopeOwnerID string, limit, offset int) (*dto.InvitationListResponse, error) {
	list, err := uc.invRepo.List(ctx, scopeOwnerID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, *toResponse(inv))
	}
	return &dto.InvitationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Revoke elimina una invitación sin usar. Las usadas no se tocan.
func (uc *UseCase) Revoke(ctx context.Context, actorID, actorRole, id string) error {
	inv, err := uc.invRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return domain.ErrInvitationNotFound
	}
	if actorRole != entity.RoleAdmin && inv.InvitedBy != actorID {
		return domain.ErrForbidden
	}
	if inv.Used() {
		return domain.ErrInvitationUsed
	}
	return uc.invRepo.Delete(ctx, id)
}

// Register consume un token de invitación y crea la cuenta. Cada causa de
// rechazo tiene su error propio: token desconocido, ya usado, vencido o
// email distinto al invitado. El consumo es un UPDATE condicional, así que
// un doble submit concurrente no puede gastar el token dos veces.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	inv, err := uc.invRepo.GetByToken(ctx, in.Token)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvitationNotFound
	}
	if inv.Used() {
		return nil, domain.ErrInvitationUsed
	}
	now := time.Now()
	if inv.Expired(now) {
		return nil, domain.ErrInvitationExpired
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != inv.Email {
		return nil, domain.ErrInvitationEmail
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	// Reclamar el token antes de crear la cuenta: si otro request lo
	// consumió en la ventana, este pierde con ErrInvitationUsed.
	claimed, err := uc.invRepo.MarkUsed(ctx, inv.ID, now)
	if err != nil {
		return nil, fmt.Errorf("consumir invitación: %w", err)
	}
	if !claimed {
		return nil, domain.ErrInvitationUsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         inv.Role,
		OwnerID:      inv.OwnerID,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// El token ya quedó consumido; se registra para diagnóstico.
		log.Error().Err(err).Str("invitation_id", inv.ID).Msg("registro falló con el token ya consumido")
		return nil, err
	}
	log.Info().Str("email", email).Str("role", user.Role).Msg("cuenta registrada por invitación")
	return auth.ToUserResponse(user), nil
}

func (uc *UseCase) registrationURL(token string) string {
	return strings.TrimRight(uc.cfg.BaseURL, "/") + "/register?token=" + token
}

// newToken genera el token de un solo uso: 32 bytes de crypto/rand en hex.
func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func toResponse(inv *entity.Invitation) *dto.InvitationResponse {
	return &dto.InvitationResponse{
		ID:        inv.ID,
		Email:     inv.Email,
		Role:      inv.Role,
		OwnerID:   inv.OwnerID,
		InvitedBy: inv.InvitedBy,
		ExpiresAt: inv.ExpiresAt,
		UsedAt:    inv.UsedAt,
		CreatedAt: inv.CreatedAt,
	}
}
