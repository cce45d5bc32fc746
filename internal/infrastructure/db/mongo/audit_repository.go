package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/thinqor/ats-assistant/internal/core/domain"
	"github.com/thinqor/ats-assistant/internal/core/ports"
)

const collectionChatExchanges = "chat_exchanges"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionChatExchanges)}
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

// InsertExchange persists one chat exchange to the audit collection.
func (r *AuditRepository) InsertExchange(ctx context.Context, e *domain.ChatExchange) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, exchangeDocument(e))
	return err
}

// EnsureIndexes creates the indexes used to browse the audit log.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "intent", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// Ping reports whether the audit database is reachable.
func (r *AuditRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, nil)
}

func exchangeDocument(e *domain.ChatExchange) bson.M {
	doc := bson.M{
		"_id":         e.ID,
		"user_id":     e.UserID.String(),
		"role":        e.Role.String(),
		"intent":      e.Intent,
		"message":     e.Message,
		"answer":      e.Answer,
		"llm_failed":  e.LLMFailed,
		"context_hit": e.ContextHit,
		"created_at":  e.CreatedAt.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if e.ClientID != "" {
		doc["client_id"] = e.ClientID.String()
	}
	return doc
}
