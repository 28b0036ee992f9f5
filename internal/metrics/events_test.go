package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GibLife_Go/internal/domain"
	"github.com/osse101/GibLife_Go/internal/event"
)

func TestEventMetricsCollector_GameEvents(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	title := "Metrics Test Task " + uuid.NewString()
	workBefore := testutil.ToFloat64(WorkEarned)
	resetsBefore := testutil.ToFloat64(TimerResets)
	gamesBefore := testutil.ToFloat64(GamesStarted)
	rejectedBefore := testutil.ToFloat64(TasksRejected)

	task := domain.AvailableTask{ID: uuid.New(), Template: domain.TaskTemplate{Title: title, Reward: 75}}
	require.NoError(t, bus.Publish(ctx, event.NewTaskGeneratedEvent("s1", task)))
	require.NoError(t, bus.Publish(ctx, event.NewTaskStartedEvent("s1", domain.ActiveTask{ID: task.ID, Title: title, Reward: 75})))
	require.NoError(t, bus.Publish(ctx, event.NewTaskCompletedEvent("s1", domain.CompletedTask{ID: task.ID, Title: title, Reward: 75, TimerReset: true})))
	require.NoError(t, bus.Publish(ctx, event.NewTaskRejectedEvent("s1", 0, 20)))
	require.NoError(t, bus.Publish(ctx, event.NewSceneChangedEvent("s1", domain.SceneMenu, domain.SceneGame)))
	require.NoError(t, bus.Publish(ctx, event.NewSceneChangedEvent("s1", domain.SceneGame, domain.SceneMenu)))

	assert.Equal(t, 1.0, testutil.ToFloat64(TasksGenerated.WithLabelValues(title)))
	assert.Equal(t, 1.0, testutil.ToFloat64(TasksStarted.WithLabelValues(title)))
	assert.Equal(t, 1.0, testutil.ToFloat64(TasksCompleted.WithLabelValues(title)))
	assert.Equal(t, 75.0, testutil.ToFloat64(WorkEarned)-workBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(TimerResets)-resetsBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(GamesStarted)-gamesBefore, "only menu->game counts")
	assert.Equal(t, 1.0, testutil.ToFloat64(TasksRejected)-rejectedBefore)
}

func TestEventMetricsCollector_SerializedPayload(t *testing.T) {
	reason := "test-" + uuid.NewString()
	evt := event.Event{
		Type:    domain.EventTypeSessionClosed,
		Payload: map[string]interface{}{"reason": reason, "work": 10},
	}

	require.NoError(t, NewEventMetricsCollector().HandleEvent(context.Background(), evt))
	assert.Equal(t, 1.0, testutil.ToFloat64(SessionsClosed.WithLabelValues(reason)))
}

func TestEventMetricsCollector_BadPayloadIgnored(t *testing.T) {
	evt := event.Event{Type: domain.EventTypeTaskCompleted, Payload: "garbage"}
	assert.NoError(t, NewEventMetricsCollector().HandleEvent(context.Background(), evt))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/metrics-test/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics-test/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-test/{id}", "418")))
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

	var _ http.Flusher = rw
	rw.Flush()
	assert.True(t, rec.Flushed)

	_, _, err := rw.Hijack()
	assert.Error(t, err, "recorder cannot be hijacked")
	assert.Same(t, rec, rw.Unwrap())
}
