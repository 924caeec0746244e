package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/internal/models/request_models"
	"github.com/shadamnittt/FeelGo/internal/models/response_models"
	"github.com/shadamnittt/FeelGo/internal/overpass"
	"github.com/shadamnittt/FeelGo/internal/session"
	"github.com/shadamnittt/FeelGo/pkg/utils"
)

type stubRecommender struct {
	places []overpass.Place
	err    error
	calls  int
}

func (s *stubRecommender) Fetch(_ context.Context, _ *session.Session) ([]overpass.Place, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.places, nil
}

type memFavorites struct {
	users map[int64]string
	names map[int64]string
	saved map[int64][]overpass.Place
}

func newMemFavorites() *memFavorites {
	return &memFavorites{
		users: make(map[int64]string),
		names: make(map[int64]string),
		saved: make(map[int64][]overpass.Place),
	}
}

func (m *memFavorites) GetOrCreateUser(_ context.Context, chatID int64, username string) error {
	if _, ok := m.users[chatID]; !ok {
		m.users[chatID] = username
	}
	return nil
}

func (m *memFavorites) SetUserName(_ context.Context, chatID int64, name string) error {
	m.names[chatID] = name
	return nil
}

func (m *memFavorites) Append(_ context.Context, chatID int64, place overpass.Place) error {
	m.saved[chatID] = append(m.saved[chatID], place)
	return nil
}

func (m *memFavorites) List(_ context.Context, chatID int64) ([]response_models.Place, error) {
	places := make([]response_models.Place, 0, len(m.saved[chatID]))
	for _, p := range m.saved[chatID] {
		places = append(places, response_models.Place{
			Name: p.Name, Latitude: p.Lat, Longitude: p.Lon, Category: p.Category,
		})
	}
	return places, nil
}

type dialogFixture struct {
	svc       DialogServiceInterface
	store     session.Store
	reco      *stubRecommender
	favorites *memFavorites
}

func newDialogFixture() *dialogFixture {
	store := session.NewCacheStore(time.Hour, time.Hour)
	reco := &stubRecommender{}
	favorites := newMemFavorites()
	svc := NewDialogService(store, reco, favorites, zap.NewNop())
	return &dialogFixture{svc: svc, store: store, reco: reco, favorites: favorites}
}

const chatID = int64(1001)

func (f *dialogFixture) mustStage(t *testing.T, want session.Stage) {
	t.Helper()
	sess, ok := f.store.Get(chatID)
	require.True(t, ok, "session should exist")
	assert.Equal(t, want, sess.Stage)
}

// walkToLocation drives the dialogue up to the point where a nearby search
// only needs the user's coordinates.
func (f *dialogFixture) walkToLocation(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.svc.HandleStart(ctx, request_models.StartEvent{ChatID: chatID, Username: "anna_k"})
	require.NoError(t, err)

	_, err = f.svc.HandleText(ctx, request_models.TextEvent{ChatID: chatID, Text: "Анна"})
	require.NoError(t, err)

	_, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "mood:😍 Радость"})
	require.NoError(t, err)

	_, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "budget:💰 Средний"})
	require.NoError(t, err)

	_, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "scope:nearby"})
	require.NoError(t, err)

	f.mustStage(t, session.StageAwaitingLocation)
}

func TestDialogHappyPathNearby(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	prompt, err := f.svc.HandleStart(ctx, request_models.StartEvent{ChatID: chatID, Username: "anna_k"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingName), prompt.Stage)

	prompt, err = f.svc.HandleText(ctx, request_models.TextEvent{ChatID: chatID, Text: "Анна"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingMood), prompt.Stage)
	assert.Contains(t, prompt.Text, "Анна")
	assert.Equal(t, "Анна", f.favorites.names[chatID])

	prompt, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "mood:😍 Радость"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingBudget), prompt.Stage)

	prompt, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "budget:💰 Средний"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingScope), prompt.Stage)

	prompt, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "scope:nearby"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingLocation), prompt.Stage)
	assert.True(t, prompt.RequestLocation)

	f.reco.places = []overpass.Place{
		{Name: "Кофейня", Lat: 55.751, Lon: 37.611, Category: "cafe"},
	}
	prompt, err = f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageResultsShown), prompt.Stage)
	assert.Contains(t, prompt.Text, "Кофейня")
	assert.Contains(t, prompt.Text, "зарядиться ещё больше")

	sess, _ := f.store.Get(chatID)
	require.Len(t, sess.LastResults, 1)
}

func TestDialogResultsNeedMoodBudgetAndBranchValue(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	_, err := f.svc.HandleStart(ctx, request_models.StartEvent{ChatID: chatID})
	require.NoError(t, err)
	_, err = f.svc.HandleText(ctx, request_models.TextEvent{ChatID: chatID, Text: "Анна"})
	require.NoError(t, err)

	// A location before mood, budget and scope are set must not trigger a
	// search or advance the stage.
	prompt, err := f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingMood), prompt.Stage)
	assert.Zero(t, f.reco.calls)
	f.mustStage(t, session.StageAwaitingMood)
}

func TestDialogFetchFailureKeepsPreFetchStage(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	f.walkToLocation(t)

	f.reco.err = fmt.Errorf("%w: timeout", utils.ErrProviderUnavailable)
	prompt, err := f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingLocation), prompt.Stage)
	assert.Contains(t, prompt.Text, "Поиск не удался")

	sess, _ := f.store.Get(chatID)
	assert.Nil(t, sess.LastResults)

	// Retrying the same step succeeds once the provider recovers.
	f.reco.err = nil
	f.reco.places = []overpass.Place{{Name: "Кафе", Lat: 55.75, Lon: 37.61}}
	prompt, err = f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageResultsShown), prompt.Stage)
}

func TestDialogEmptyResultStillAdvances(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	f.walkToLocation(t)

	prompt, err := f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageResultsShown), prompt.Stage)
	assert.Contains(t, prompt.Text, "ничего не найдено")
}

func TestDialogCityWideBranch(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	_, err := f.svc.HandleStart(ctx, request_models.StartEvent{ChatID: chatID})
	require.NoError(t, err)
	_, err = f.svc.HandleText(ctx, request_models.TextEvent{ChatID: chatID, Text: "Анна"})
	require.NoError(t, err)
	_, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "mood:🤩 Вдохновение"})
	require.NoError(t, err)
	_, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "budget:💎 Премиум"})
	require.NoError(t, err)

	prompt, err := f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "scope:citywide"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingCategory), prompt.Stage)
	assert.NotEmpty(t, prompt.Options)

	f.reco.places = []overpass.Place{{Name: "Театр", Lat: 55.76, Lon: 37.62}}
	prompt, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "category:theatre"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageResultsShown), prompt.Stage)
	assert.Contains(t, prompt.Text, "Театр")

	sess, _ := f.store.Get(chatID)
	assert.Equal(t, "theatre", sess.CategoryID)
	assert.Nil(t, sess.Location)
}

func TestDialogSaveFavoriteStaysInResults(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	f.walkToLocation(t)
	f.reco.places = []overpass.Place{{Name: "Кофейня", Lat: 55.751, Lon: 37.611, Category: "cafe"}}
	_, err := f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)

	prompt, err := f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "save:0"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageResultsShown), prompt.Stage)
	assert.Contains(t, prompt.Text, "Добавлено в избранное")

	require.Len(t, f.favorites.saved[chatID], 1)
	assert.Equal(t, "Кофейня", f.favorites.saved[chatID][0].Name)
}

func TestDialogSaveOutOfRangeIndex(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	f.walkToLocation(t)
	f.reco.places = []overpass.Place{{Name: "Кофейня", Lat: 55.751, Lon: 37.611}}
	_, err := f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)

	prompt, err := f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "save:7"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageResultsShown), prompt.Stage)
	assert.Empty(t, f.favorites.saved[chatID])
	assert.Contains(t, prompt.Text, "Нет данных")
}

func TestDialogIdleSelfLoopIsIdempotent(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	f.walkToLocation(t)
	_, err := f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)
	_, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "main_menu"})
	require.NoError(t, err)
	f.mustStage(t, session.StageIdle)

	first, err := f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "favorites"})
	require.NoError(t, err)
	second, err := f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "favorites"})
	require.NoError(t, err)

	assert.Equal(t, first.Stage, second.Stage)
	f.mustStage(t, session.StageIdle)
}

func TestDialogNewSearchKeepsName(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	f.walkToLocation(t)
	f.reco.places = []overpass.Place{{Name: "Кафе", Lat: 55.75, Lon: 37.61}}
	_, err := f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)

	prompt, err := f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "new_search"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingMood), prompt.Stage)

	sess, _ := f.store.Get(chatID)
	assert.Equal(t, "Анна", sess.Name)
	assert.Empty(t, sess.Mood)
	assert.Nil(t, sess.LastResults)
}

func TestDialogCancelResetsEverything(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	f.walkToLocation(t)

	prompt, err := f.svc.HandleCancel(ctx, request_models.CancelEvent{ChatID: chatID})
	require.NoError(t, err)
	assert.Contains(t, prompt.Text, "/start")

	_, found := f.store.Get(chatID)
	assert.False(t, found)

	prompt, err = f.svc.HandleText(ctx, request_models.TextEvent{ChatID: chatID, Text: "Анна"})
	require.NoError(t, err)
	assert.Contains(t, prompt.Text, "/start")
}

func TestDialogInvalidInputSelfLoops(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	_, err := f.svc.HandleStart(ctx, request_models.StartEvent{ChatID: chatID})
	require.NoError(t, err)
	_, err = f.svc.HandleText(ctx, request_models.TextEvent{ChatID: chatID, Text: "Анна"})
	require.NoError(t, err)

	// Garbage in AwaitingMood.
	prompt, err := f.svc.HandleText(ctx, request_models.TextEvent{ChatID: chatID, Text: "что-то странное"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingMood), prompt.Stage)

	// Budget selection cannot jump the queue.
	prompt, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "budget:💰 Средний"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingMood), prompt.Stage)

	// Unknown menu button.
	prompt, err = f.svc.HandleMenu(ctx, request_models.MenuEvent{ChatID: chatID, ButtonID: "does_not_exist"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingMood), prompt.Stage)
	assert.Zero(t, f.reco.calls)
}

func TestDialogReplyKeyboardTextInResultsStage(t *testing.T) {
	f := newDialogFixture()
	ctx := context.Background()

	f.walkToLocation(t)
	_, err := f.svc.HandleLocation(ctx, request_models.LocationEvent{ChatID: chatID, Latitude: 55.75, Longitude: 37.61})
	require.NoError(t, err)

	// Reply-keyboard gateways deliver the button label as plain text.
	prompt, err := f.svc.HandleText(ctx, request_models.TextEvent{ChatID: chatID, Text: "🎯 Новая подборка"})
	require.NoError(t, err)
	assert.Equal(t, string(session.StageAwaitingMood), prompt.Stage)
}
