package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stocker-app/stocker-api/internal/domain"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
	"github.com/stocker-app/stocker-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementación del puerto InvitationRepository sobre
// PostgreSQL (usable con pool o tx).
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository construye el adaptador de invitaciones.
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

const invitationColumns = `id, email, role, token, owner_id, invited_by, expires_at, used_at, created_at`

// Create persiste una invitación. Token repetido devuelve ErrDuplicate.
func (r *InvitationRepo) Create(ctx context.Context, inv *entity.Invitation) error {
	query := `
		INSERT INTO invitations (id, email, role, token, owner_id, invited_by, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Email, inv.Role, inv.Token, inv.OwnerID, inv.InvitedBy,
		inv.ExpiresAt, inv.UsedAt, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetByID obtiene una invitación por ID.
func (r *InvitationRepo) GetByID(ctx context.Context, id string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetByToken obtiene una invitación por token.
func (r *InvitationRepo) GetByToken(ctx context.Context, token string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1`
	return r.scanOne(ctx, query, token)
}

func (r *InvitationRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Invitation, error) {
	var inv entity.Invitation
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&inv.ID, &inv.Email, &inv.Role, &inv.Token, &inv.OwnerID, &inv.InvitedBy,
		&inv.ExpiresAt, &inv.UsedAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}

// List lista invitaciones; ownerID vacío no filtra (admin).
func (r *InvitationRepo) List(ctx context.Context, ownerID string, limit, offset int) ([]*entity.Invitation, error) {
	query := `
		SELECT ` + invitationColumns + `
		FROM invitations WHERE ($1 = '' OR owner_id = $1 OR invited_by = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invitation
	for rows.Next() {
		var inv entity.Invitation
		if err := rows.Scan(&inv.ID, &inv.Email, &inv.Role, &inv.Token, &inv.OwnerID, &inv.InvitedBy, &inv.ExpiresAt, &inv.UsedAt, &inv.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Delete elimina una invitación por ID.
func (r *InvitationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	return nil
}

// MarkUsed marca la invitación como usada solo si seguía sin usar (UPDATE
// condicional). Devuelve false cuando otro request la consumió antes: así
// un doble submit no puede gastar el token dos veces.
func (r *InvitationRepo) MarkUsed(ctx context.Context, id string, usedAt time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE invitations SET used_at = $2 WHERE id = $1 AND used_at IS NULL`,
		id, usedAt,
	)
	if err != nil {
		return false, fmt.Errorf("mark invitation used: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
