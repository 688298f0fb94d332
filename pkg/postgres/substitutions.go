package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/model"
)

const substitutionColumns = `
	id, assignment_id, requested_by, requested_at, reason,
	status, proposed_substitute, approved_by, approved_at, notes
`

// GetSubstitutionRequests retrieves all substitution requests
func (d *DB) GetSubstitutionRequests(ctx context.Context) ([]model.SubstitutionRequest, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+substitutionColumns+`
		FROM substitution_request
		ORDER BY requested_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query substitution requests: %w", err)
	}
	defer rows.Close()
	return scanSubstitutions(rows)
}

// GetSubstitutionRequest retrieves one request by id, nil when absent
func (d *DB) GetSubstitutionRequest(ctx context.Context, id string) (*model.SubstitutionRequest, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+substitutionColumns+`
		FROM substitution_request
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query substitution request %s: %w", id, err)
	}
	defer rows.Close()

	requests, err := scanSubstitutions(rows)
	if err != nil {
		return nil, err
	}
	if len(requests) == 0 {
		return nil, nil
	}
	return &requests[0], nil
}

// InsertSubstitutionRequest inserts one substitution request
func (d *DB) InsertSubstitutionRequest(ctx context.Context, r *model.SubstitutionRequest) error {
	var proposed, approvedBy *string
	if r.ProposedSubstitute != "" {
		proposed = &r.ProposedSubstitute
	}
	if r.ApprovedBy != "" {
		approvedBy = &r.ApprovedBy
	}

	_, err := d.pool.Exec(ctx, `
		INSERT INTO substitution_request (`+substitutionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, r.ID, r.AssignmentID, r.RequestedBy, r.RequestedAt, r.Reason,
		string(r.Status), proposed, approvedBy, r.ApprovedAt, r.Notes)
	if err != nil {
		return fmt.Errorf("failed to insert substitution request %s: %w", r.ID, err)
	}
	return nil
}

// UpdateSubstitutionRequest rewrites the mutable request fields
func (d *DB) UpdateSubstitutionRequest(ctx context.Context, r model.SubstitutionRequest) error {
	var proposed, approvedBy *string
	if r.ProposedSubstitute != "" {
		proposed = &r.ProposedSubstitute
	}
	if r.ApprovedBy != "" {
		approvedBy = &r.ApprovedBy
	}

	tag, err := d.pool.Exec(ctx, `
		UPDATE substitution_request
		SET status = $2, proposed_substitute = $3, approved_by = $4, approved_at = $5, notes = $6
		WHERE id = $1
	`, r.ID, string(r.Status), proposed, approvedBy, r.ApprovedAt, r.Notes)
	if err != nil {
		return fmt.Errorf("failed to update substitution request %s: %w", r.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("substitution request %s not found", r.ID)
	}
	return nil
}

func scanSubstitutions(rows pgx.Rows) ([]model.SubstitutionRequest, error) {
	var requests []model.SubstitutionRequest
	for rows.Next() {
		var r model.SubstitutionRequest
		var status string
		var proposed, approvedBy *string
		if err := rows.Scan(&r.ID, &r.AssignmentID, &r.RequestedBy, &r.RequestedAt, &r.Reason,
			&status, &proposed, &approvedBy, &r.ApprovedAt, &r.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan substitution request: %w", err)
		}
		r.Status = model.SubstitutionStatus(status)
		if proposed != nil {
			r.ProposedSubstitute = *proposed
		}
		if approvedBy != nil {
			r.ApprovedBy = *approvedBy
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating substitution requests: %w", err)
	}
	return requests, nil
}
