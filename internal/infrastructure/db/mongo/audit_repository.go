package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

const auditCollection = "audit_events"

// MongoAuditRepository persists denied-authorization events for operator
// investigation. Writes come from the audit dispatcher workers, never from a
// guard directly.
type MongoAuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *MongoAuditRepository {
	return &MongoAuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	PrincipalID string `bson:"principal_id"`
	Email       string `bson:"email"`
	Guard       string `bson:"guard"`
	Reason      string `bson:"reason"`
	At          int64  `bson:"at"`
}

func (r *MongoAuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	doc := mongoAuditEvent{
		PrincipalID: event.PrincipalID,
		Email:       event.Email,
		Guard:       event.Guard,
		Reason:      event.Reason,
		At:          event.At.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
