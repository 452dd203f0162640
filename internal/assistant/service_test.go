package assistant

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/salonat-app/salon-api/internal/cache"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func newTestService(gen Generator, c *cache.Layered) *Service {
	return NewService(nil, gen, NewHistory(), c, zap.NewNop())
}

func TestConsult_HappyPathRecordsHistory(t *testing.T) {
	gen := &stubGenerator{reply: "تفضلي، صالون نور هو الأنسب."}
	svc := newTestService(gen, nil)

	reply, err := svc.Consult(context.Background(), 7, "وين أرخص صالون في نابلس؟")
	if err != nil {
		t.Fatalf("Consult: %v", err)
	}

	if reply.Message != gen.reply {
		t.Fatalf("message = %q", reply.Message)
	}
	if reply.Aim != AimCompare {
		t.Fatalf("aim = %s, want %s", reply.Aim, AimCompare)
	}
	if reply.Fallback {
		t.Fatal("unexpected fallback")
	}

	hist := svc.history.Recent(7)
	if len(hist) != 1 || hist[0].Assistant != gen.reply {
		t.Fatalf("history = %+v", hist)
	}
}

func TestConsult_ModelFailureFallsBackInUserLanguage(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	svc := newTestService(gen, nil)

	reply, err := svc.Consult(context.Background(), 1, "وين أقرب صالون؟")
	if err != nil {
		t.Fatalf("Consult must not surface model errors: %v", err)
	}
	if !reply.Fallback {
		t.Fatal("expected fallback reply")
	}
	if reply.Message != fallbackArabic {
		t.Fatalf("arabic question got %q", reply.Message)
	}

	reply, _ = svc.Consult(context.Background(), 1, "any salon near me?")
	if reply.Message != fallbackEnglish {
		t.Fatalf("english question got %q", reply.Message)
	}
}

func TestConsult_CachesFreshConversations(t *testing.T) {
	gen := &stubGenerator{reply: "الإجابة"}
	c := cache.New(nil, nil)
	svc := newTestService(gen, c)

	first, err := svc.Consult(context.Background(), 1, "بكم المكياج؟")
	if err != nil {
		t.Fatalf("Consult: %v", err)
	}
	if first.Cached {
		t.Fatal("first answer cannot be cached")
	}

	// A different user asking the same fresh question hits the cache.
	second, err := svc.Consult(context.Background(), 2, "بكم المكياج؟")
	if err != nil {
		t.Fatalf("Consult: %v", err)
	}
	if !second.Cached {
		t.Fatal("expected cached reply for second user")
	}
	if gen.calls != 1 {
		t.Fatalf("model called %d times, want 1", gen.calls)
	}

	// User 1 now has history, so their next turn skips the cache.
	if _, err := svc.Consult(context.Background(), 1, "بكم المكياج؟"); err != nil {
		t.Fatalf("Consult: %v", err)
	}
	if gen.calls != 2 {
		t.Fatalf("model called %d times, want 2", gen.calls)
	}
}
