package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
	"github.com/deepakscse/auction-BE/internal/hub"
	"github.com/deepakscse/auction-BE/internal/session"
	"github.com/deepakscse/auction-BE/internal/token"
	"github.com/deepakscse/auction-BE/internal/util"
	"github.com/deepakscse/auction-BE/internal/worker"
	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeTaskDistributor records enqueued payloads instead of talking to Redis.
type fakeTaskDistributor struct {
	mu            sync.Mutex
	notifications []worker.PayloadSendNotification
	announcements []worker.PayloadAnnounceSale
}

func (d *fakeTaskDistributor) DistributeTaskSendNotification(_ context.Context, payload *worker.PayloadSendNotification, _ ...asynq.Option) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, *payload)
	return nil
}

func (d *fakeTaskDistributor) DistributeTaskAnnounceSale(_ context.Context, payload *worker.PayloadAnnounceSale, _ ...asynq.Option) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.announcements = append(d.announcements, *payload)
	return nil
}

func (d *fakeTaskDistributor) announceCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.announcements)
}

func (d *fakeTaskDistributor) notificationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.notifications)
}

func newTestServer(t *testing.T, store db.Store) (*Server, *fakeTaskDistributor) {
	t.Helper()

	config := &util.Config{
		AllowedOrigins:       []string{"http://localhost:3000"},
		TokenSecretKey:       "01234567890123456789012345678901",
		AccessTokenDuration:  time.Minute,
		RefreshTokenDuration: time.Hour,
		AdminEmails:          []string{"admin@example.com"},
		MaxEvents:            100,
	}

	distributor := &fakeTaskDistributor{}
	sessions := session.NewManager(redis.NewClient(&redis.Options{}))

	server, err := NewServer(store, hub.New(config.MaxEvents), sessions, distributor, config)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	return server, distributor
}

func bearerToken(t *testing.T, server *Server, userID string, role string, teamID *int64) string {
	t.Helper()

	accessToken, _, err := server.tokenMaker.CreateToken(userID, role, teamID, token.TypeAccess, time.Minute)
	if err != nil {
		t.Fatalf("CreateToken: %v", err)
	}
	return fmt.Sprintf("%s %s", authorizationTypeBearer, accessToken)
}

func setAuthorization(req *http.Request, bearer string) {
	req.Header.Set(authorizationHeaderKey, bearer)
}
