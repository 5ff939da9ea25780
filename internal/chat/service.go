// Package chat implements the natural-language entry path: a user
// message goes to the parser, the extracted drafts are persisted, and
// a Vietnamese confirmation comes back.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kent242/moneychat/internal/ai"
	"github.com/kent242/moneychat/internal/domain"
	"github.com/kent242/moneychat/internal/store"
)

// ErrInvalidAmount marks a message whose drafts carry no usable
// amounts; handlers answer with InvalidAmountMessage.
var ErrInvalidAmount = errors.New("invalid amount")

// Reply is the outcome of one chat message.
type Reply struct {
	Message      string               `json:"message"`
	Transactions []domain.Transaction `json:"transactions"`
	Parsed       []ai.Draft           `json:"parsed"`
	Count        int                  `json:"count"`
	Failed       int                  `json:"failed,omitempty"`
}

// Service parses chat messages and persists the extracted drafts.
type Service struct {
	parser     ai.Parser
	store      store.TransactionStore
	categories store.CategoryStore
	format     *Formatter
	log        zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a chat service.
func NewService(parser ai.Parser, txStore store.TransactionStore, catStore store.CategoryStore, format *Formatter, log zerolog.Logger) *Service {
	return &Service{
		parser:     parser,
		store:      txStore,
		categories: catStore,
		format:     format,
		log:        log,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// HandleMessage runs the full chat flow. A parser failure is fatal;
// storage failures after parsing are per-draft, so one bad write does
// not discard the others, and the reply reports what was lost.
func (s *Service) HandleMessage(ctx context.Context, userID, message string) (*Reply, error) {
	cats, err := s.categories.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("chat: loading categories: %w", err)
	}
	names := domain.NamesByType(cats)

	drafts, err := s.parser.ParseMessage(ctx, message, names)
	if err != nil {
		return nil, fmt.Errorf("chat: %w", err)
	}

	for _, d := range drafts {
		if d.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
	}

	now := s.now()
	var saved []domain.Transaction
	var savedDrafts []ai.Draft
	failed := 0
	for _, d := range drafts {
		tx := s.toTransaction(userID, d, names, now)
		if err := s.store.Insert(ctx, tx); err != nil {
			failed++
			s.log.Error().Err(err).Str("description", d.Description).Msg("saving parsed transaction failed")
			continue
		}
		saved = append(saved, tx)
		savedDrafts = append(savedDrafts, d)
	}

	if len(saved) == 0 {
		return nil, fmt.Errorf("chat: saving transactions: all %d writes failed", failed)
	}

	var msg string
	if len(savedDrafts) == 1 {
		msg = s.format.singleMessage(savedDrafts[0])
	} else {
		msg = s.format.multiMessage(savedDrafts)
	}
	if failed > 0 {
		msg += partialFailureNote(failed)
	}

	s.log.Info().
		Str("user_id", userID).
		Int("saved", len(saved)).
		Int("failed", failed).
		Msg("chat message processed")

	return &Reply{
		Message:      msg,
		Transactions: saved,
		Parsed:       savedDrafts,
		Count:        len(saved),
		Failed:       failed,
	}, nil
}

// toTransaction turns a draft into a persistable transaction. The
// occurred-at time is the chat time; chat has no way to backdate.
func (s *Service) toTransaction(userID string, d ai.Draft, names domain.CategoryNames, now time.Time) domain.Transaction {
	known := names.Expense
	if d.Kind == domain.KindIncome {
		known = names.Income
	}

	return domain.Transaction{
		ID:            s.newID(),
		UserID:        userID,
		Description:   d.Description,
		Amount:        d.Amount,
		Kind:          d.Kind,
		Category:      ai.ResolveCategory(d.Category, known),
		Merchant:      d.Merchant,
		OccurredAt:    now,
		AICategorized: true,
		AIConfidence:  d.Confidence,
		CreatedAt:     now,
	}
}
