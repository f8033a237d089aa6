package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"quorum/contexts/governance/voting-registry/domain/entities"
	domainerrors "quorum/contexts/governance/voting-registry/domain/errors"
	"quorum/contexts/governance/voting-registry/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	outboxStatusPending   = "pending"
	outboxStatusPublished = "published"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) CreateSession(ctx context.Context, session entities.Session) (uint64, error) {
	row := sessionModelFromEntity(session)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		questions := make([]questionModel, 0, len(session.Questions))
		for index, question := range session.Questions {
			questions = append(questions, questionModel{
				SessionID:     row.ID,
				QuestionIndex: index,
				Text:          question.Text,
				Private:       question.Private,
			})
		}
		return tx.Create(&questions).Error
	})
	if err != nil {
		return 0, r.logError("registry_repo_create_session_failed", err)
	}
	return row.ID, nil
}

func (r *Repository) GetSession(ctx context.Context, sessionID uint64) (entities.Session, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("id = ?", sessionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Session{}, domainerrors.ErrSessionNotFound
		}
		return entities.Session{}, r.logError("registry_repo_get_session_failed", err, "session_id", sessionID)
	}

	var questionRows []questionModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("question_index ASC").
		Find(&questionRows).Error; err != nil {
		return entities.Session{}, r.logError("registry_repo_get_session_questions_failed", err, "session_id", sessionID)
	}
	return row.toEntity(questionRows), nil
}

func (r *Repository) SetPaused(ctx context.Context, sessionID uint64, pausedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"paused":     true,
			"updated_at": pausedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("registry_repo_set_paused_failed", result.Error, "session_id", sessionID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) SetFinalized(ctx context.Context, sessionID uint64, commitment string, finalizedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"finalized":  true,
			"commitment": strings.TrimSpace(commitment),
			"updated_at": finalizedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("registry_repo_set_finalized_failed", result.Error, "session_id", sessionID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrSessionNotFound
	}
	return nil
}

func (r *Repository) SessionCount(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Count(&count).Error; err != nil {
		return 0, r.logError("registry_repo_session_count_failed", err)
	}
	return uint64(count), nil
}

func (r *Repository) AddMembers(ctx context.Context, memberIDs []string, addedAt time.Time) error {
	rows := make([]memberModel, 0, len(memberIDs))
	for _, id := range memberIDs {
		rows = append(rows, memberModel{
			MemberID: strings.TrimSpace(id),
			AddedAt:  addedAt.UTC(),
		})
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}},
		DoNothing: true,
	}).Create(&rows)
	if create.Error != nil {
		return r.logError("registry_repo_add_members_failed", create.Error, "member_count", len(memberIDs))
	}
	return nil
}

func (r *Repository) IsMember(ctx context.Context, memberID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&memberModel{}).
		Where("member_id = ?", strings.TrimSpace(memberID)).
		Count(&count).Error; err != nil {
		return false, r.logError("registry_repo_is_member_failed", err, "member_id", strings.TrimSpace(memberID))
	}
	return count > 0, nil
}

func (r *Repository) HasVoted(ctx context.Context, sessionID uint64, questionIndex int, memberID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ballotModel{}).
		Where("session_id = ?", sessionID).
		Where("question_index = ?", questionIndex).
		Where("member_id = ?", strings.TrimSpace(memberID)).
		Count(&count).Error; err != nil {
		return false, r.logError("registry_repo_has_voted_failed", err,
			"session_id", sessionID,
			"question_index", questionIndex,
		)
	}
	return count > 0, nil
}

// ApplyBallots commits markers and tally increments in one transaction so a
// failing item rolls the whole set back.
func (r *Repository) ApplyBallots(ctx context.Context, sessionID uint64, memberID string, casts []ports.BallotCast) error {
	memberID = strings.TrimSpace(memberID)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cast := range casts {
			insert := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "session_id"},
					{Name: "question_index"},
					{Name: "member_id"},
				},
				DoNothing: true,
			}).Create(&ballotModel{
				SessionID:     sessionID,
				QuestionIndex: cast.QuestionIndex,
				MemberID:      memberID,
				CastAt:        time.Now().UTC(),
			})
			if insert.Error != nil {
				if isUniqueViolation(insert.Error) {
					return domainerrors.ErrAlreadyVoted
				}
				return insert.Error
			}
			if insert.RowsAffected == 0 {
				return domainerrors.ErrAlreadyVoted
			}

			var tallyRow tallyModel
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("session_id = ?", sessionID).
				Where("question_index = ?", cast.QuestionIndex).
				First(&tallyRow).
				Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			tallyRow.SessionID = sessionID
			tallyRow.QuestionIndex = cast.QuestionIndex

			tally := tallyRow.toEntity()
			if !tally.Increment(cast.Choice) {
				return domainerrors.ErrVoteCountOverflow
			}
			tallyRow.Abstain = tally.Abstain
			tallyRow.Yes = tally.Yes
			tallyRow.No = tally.No

			upsert := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "session_id"},
					{Name: "question_index"},
				},
				DoUpdates: clause.Assignments(map[string]any{
					"abstain_count": tallyRow.Abstain,
					"yes_count":     tallyRow.Yes,
					"no_count":      tallyRow.No,
				}),
			}).Create(&tallyRow)
			if upsert.Error != nil {
				return upsert.Error
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyVoted) || errors.Is(err, domainerrors.ErrVoteCountOverflow) {
			return err
		}
		return r.logError("registry_repo_apply_ballots_failed", err,
			"session_id", sessionID,
			"member_id", memberID,
			"cast_count", len(casts),
		)
	}
	return nil
}

func (r *Repository) GetTally(ctx context.Context, sessionID uint64, questionIndex int) (entities.Tally, error) {
	var row tallyModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Where("question_index = ?", questionIndex).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Tally{}, nil
		}
		return entities.Tally{}, r.logError("registry_repo_get_tally_failed", err,
			"session_id", sessionID,
			"question_index", questionIndex,
		)
	}
	return row.toEntity(), nil
}

func (r *Repository) AppendOutbox(ctx context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return r.logError("registry_repo_append_outbox_marshal_failed", err,
			"event_type", strings.TrimSpace(envelope.EventType),
		)
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       outboxStatusPending,
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	create := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if create.Error != nil {
		return r.logError("registry_repo_append_outbox_insert_failed", create.Error, "outbox_id", row.OutboxID)
	}
	if create.RowsAffected > 0 {
		return nil
	}

	var existing outboxModel
	if err := r.db.WithContext(ctx).
		Select("payload").
		Where("outbox_id = ?", row.OutboxID).
		First(&existing).Error; err != nil {
		return r.logError("registry_repo_append_outbox_load_existing_failed", err, "outbox_id", row.OutboxID)
	}
	if !bytes.Equal(existing.Payload, row.Payload) {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("registry_repo_list_pending_outbox_failed", err, "limit", limit)
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outboxStatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("registry_repo_mark_outbox_published_failed", result.Error,
			"outbox_id", strings.TrimSpace(outboxID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "governance/voting-registry",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("registry repository operation failed", fields...)
	return err
}

// SystemClock reads the ambient wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// UUIDGenerator issues audit event ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

type sessionModel struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	StartsAt   time.Time `gorm:"column:starts_at"`
	EndsAt     time.Time `gorm:"column:ends_at"`
	Paused     bool      `gorm:"column:paused"`
	Finalized  bool      `gorm:"column:finalized"`
	Commitment string    `gorm:"column:commitment"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string {
	return "voting_sessions"
}

func sessionModelFromEntity(session entities.Session) sessionModel {
	row := sessionModel{
		StartsAt:   session.StartsAt.UTC(),
		EndsAt:     session.EndsAt.UTC(),
		Paused:     session.Paused,
		Finalized:  session.Finalized,
		Commitment: strings.TrimSpace(session.Commitment),
		CreatedAt:  session.CreatedAt.UTC(),
		UpdatedAt:  session.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func (m sessionModel) toEntity(questionRows []questionModel) entities.Session {
	questions := make([]entities.Question, 0, len(questionRows))
	for _, row := range questionRows {
		questions = append(questions, entities.Question{
			Text:    row.Text,
			Private: row.Private,
		})
	}
	return entities.Session{
		SessionID:  m.ID,
		StartsAt:   m.StartsAt.UTC(),
		EndsAt:     m.EndsAt.UTC(),
		Questions:  questions,
		Paused:     m.Paused,
		Finalized:  m.Finalized,
		Commitment: m.Commitment,
		CreatedAt:  m.CreatedAt.UTC(),
		UpdatedAt:  m.UpdatedAt.UTC(),
	}
}

type questionModel struct {
	SessionID     uint64 `gorm:"column:session_id;primaryKey"`
	QuestionIndex int    `gorm:"column:question_index;primaryKey"`
	Text          string `gorm:"column:text"`
	Private       bool   `gorm:"column:private"`
}

func (questionModel) TableName() string {
	return "voting_questions"
}

type memberModel struct {
	MemberID string    `gorm:"column:member_id;primaryKey"`
	AddedAt  time.Time `gorm:"column:added_at"`
}

func (memberModel) TableName() string {
	return "voting_members"
}

type ballotModel struct {
	SessionID     uint64    `gorm:"column:session_id;primaryKey"`
	QuestionIndex int       `gorm:"column:question_index;primaryKey"`
	MemberID      string    `gorm:"column:member_id;primaryKey"`
	CastAt        time.Time `gorm:"column:cast_at"`
}

func (ballotModel) TableName() string {
	return "voting_ballots"
}

type tallyModel struct {
	SessionID     uint64 `gorm:"column:session_id;primaryKey"`
	QuestionIndex int    `gorm:"column:question_index;primaryKey"`
	Abstain       uint64 `gorm:"column:abstain_count"`
	Yes           uint64 `gorm:"column:yes_count"`
	No            uint64 `gorm:"column:no_count"`
}

func (tallyModel) TableName() string {
	return "voting_tallies"
}

func (m tallyModel) toEntity() entities.Tally {
	return entities.Tally{
		Abstain: m.Abstain,
		Yes:     m.Yes,
		No:      m.No,
	}
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "voting_registry_outbox"
}

var _ ports.SessionRepository = (*Repository)(nil)
var _ ports.MemberRepository = (*Repository)(nil)
var _ ports.BallotRepository = (*Repository)(nil)
var _ ports.OutboxWriter = (*Repository)(nil)
var _ ports.OutboxRepository = (*Repository)(nil)
