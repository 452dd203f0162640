package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/salonat-app/salon-api/internal/cache"
	"github.com/salonat-app/salon-api/internal/models"
)

const (
	cacheNamespace   = "ai_responses"
	contextNamespace = "salon_context"
)

// Service runs one consultant turn: classify, extract slots, load the
// salon context, assemble the prompt, call the model, record history.
type Service struct {
	db        *gorm.DB
	fetcher   *ContextFetcher
	generator Generator
	history   *History
	cache     *cache.Layered
	log       *zap.Logger
}

func NewService(db *gorm.DB, generator Generator, history *History, c *cache.Layered, log *zap.Logger) *Service {
	return &Service{
		db:        db,
		fetcher:   NewContextFetcher(db),
		generator: generator,
		history:   history,
		cache:     c,
		log:       log,
	}
}

type Reply struct {
	Message    string  `json:"message"`
	Aim        Aim     `json:"aim"`
	Confidence float64 `json:"confidence"`
	Slots      Slots   `json:"slots"`
	Cached     bool    `json:"cached"`
	Fallback   bool    `json:"fallback,omitempty"`
}

// Consult answers one chat message for a customer. Model failures never
// surface to the caller: the reply degrades to a canned answer in the
// user's language and the turn is still recorded.
func (s *Service) Consult(ctx context.Context, customerID uint, message string) (Reply, error) {
	message = strings.TrimSpace(message)

	var profile *models.Customer
	if s.db != nil {
		var cust models.Customer
		if err := s.db.WithContext(ctx).First(&cust, customerID).Error; err == nil {
			profile = &cust
		}
	}

	cls := Classify(message)
	slots := ExtractSlots(message, profile)

	reply := Reply{Aim: cls.Aim, Confidence: cls.Confidence, Slots: slots}

	history := s.history.Recent(customerID)

	// Only fresh conversations hit the cache: once there is history the
	// same question can legitimately produce a different answer.
	key := responseKey(message, cls, slots)
	if len(history) == 0 {
		if cached, ok := s.cachedReply(ctx, key); ok {
			reply.Message = cached
			reply.Cached = true
			s.history.Append(customerID, message, cached)
			return reply, nil
		}
	}

	salonContext := s.salonContext(ctx, cls, slots)

	prompt := BuildConsultPrompt(message, cls, slots, salonContext, history)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.log.Warn("model call failed, serving fallback",
			zap.Error(err),
			zap.String("aim", string(cls.Aim)),
			zap.Uint("customer_id", customerID))
		reply.Message = FallbackReply(message)
		reply.Fallback = true
		s.history.Append(customerID, message, reply.Message)
		return reply, nil
	}

	reply.Message = answer
	s.history.Append(customerID, message, answer)

	if len(history) == 0 {
		s.storeReply(ctx, key, answer)
	}

	return reply, nil
}

func (s *Service) Reset(customerID uint) {
	s.history.Clear(customerID)
}

// salonContext loads the grounding data block, caching it per query
// shape so repeated questions about the same city and service skip the
// aggregation queries.
func (s *Service) salonContext(ctx context.Context, cls Classification, slots Slots) string {
	key := strings.Join([]string{
		string(cls.Aim), slots.City, slots.Gender, slots.Service, slots.BudgetIntent,
	}, ":")

	if s.cache != nil {
		if v, ok := s.cache.Get(contextNamespace, key); ok {
			if text, ok := v.(string); ok {
				return text
			}
		}
	}

	if s.db == nil {
		return ""
	}

	text, err := s.fetcher.Fetch(ctx, cls, slots)
	if err != nil {
		s.log.Warn("salon context fetch failed", zap.Error(err))
		return ""
	}

	if s.cache != nil && text != "" {
		s.cache.Set(contextNamespace, key, text)
	}
	return text
}

func (s *Service) cachedReply(ctx context.Context, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	return s.cache.GetWithFallback(ctx, cacheNamespace, key)
}

func (s *Service) storeReply(ctx context.Context, key, answer string) {
	if s.cache == nil {
		return
	}
	s.cache.SetBoth(ctx, cacheNamespace, key, answer)
}

// responseKey folds everything that shapes the answer into a stable key.
func responseKey(message string, cls Classification, slots Slots) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(message)))
	h.Write([]byte{0})
	h.Write([]byte(cls.Aim))
	h.Write([]byte{0})
	h.Write([]byte(slots.City))
	h.Write([]byte{0})
	h.Write([]byte(slots.Gender))
	h.Write([]byte{0})
	h.Write([]byte(slots.Service))
	return hex.EncodeToString(h.Sum(nil))[:32]
}
