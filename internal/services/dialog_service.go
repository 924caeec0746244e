package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/shadamnittt/FeelGo/internal/catalogs"
	"github.com/shadamnittt/FeelGo/internal/models/request_models"
	"github.com/shadamnittt/FeelGo/internal/models/response_models"
	"github.com/shadamnittt/FeelGo/internal/overpass"
	"github.com/shadamnittt/FeelGo/internal/session"
)

// Menu button ids the gateway echoes back in MenuEvents. Option values
// (moods, budgets, scopes, categories) are prefixed so the handler can tell
// what kind of selection arrived.
const (
	buttonNewSearch = "new_search"
	buttonFavorites = "favorites"
	buttonMainMenu  = "main_menu"

	prefixMood     = "mood:"
	prefixBudget   = "budget:"
	prefixScope    = "scope:"
	prefixCategory = "category:"
	prefixSave     = "save:"
)

const (
	labelNewSearch = "🎯 Новая подборка"
	labelFavorites = "⭐ Избранное"
	labelMainMenu  = "🔙 Главное меню"
)

// maxResultButtons caps how many per-place save buttons one prompt carries.
const maxResultButtons = 5

type DialogServiceInterface interface {
	HandleStart(ctx context.Context, event request_models.StartEvent) (response_models.Prompt, error)
	HandleText(ctx context.Context, event request_models.TextEvent) (response_models.Prompt, error)
	HandleLocation(ctx context.Context, event request_models.LocationEvent) (response_models.Prompt, error)
	HandleMenu(ctx context.Context, event request_models.MenuEvent) (response_models.Prompt, error)
	HandleCancel(ctx context.Context, event request_models.CancelEvent) (response_models.Prompt, error)
}

type DialogService struct {
	sessions        session.Store
	recommendations RecommendationServiceInterface
	favorites       FavoritesServiceInterface
	logger          *zap.Logger
}

func NewDialogService(
	sessions session.Store,
	recommendations RecommendationServiceInterface,
	favorites FavoritesServiceInterface,
	logger *zap.Logger,
) DialogServiceInterface {
	return &DialogService{
		sessions:        sessions,
		recommendations: recommendations,
		favorites:       favorites,
		logger:          logger,
	}
}

// HandleStart (re)opens the dialogue: the user record is created if needed
// and the session restarts at onboarding, whatever stage it was in before.
func (s *DialogService) HandleStart(ctx context.Context, event request_models.StartEvent) (response_models.Prompt, error) {
	if err := s.favorites.GetOrCreateUser(ctx, event.ChatID, event.Username); err != nil {
		return response_models.Prompt{}, err
	}

	sess := s.sessions.GetOrCreate(event.ChatID)
	sess.Lock()
	defer sess.Unlock()

	sess.Stage = session.StageAwaitingName
	sess.Name = ""
	sess.ResetPreferences()
	s.sessions.Touch(sess)

	return response_models.Prompt{
		Text:  "Привет! Я FeelGo — твой навигатор по настроению и местам 🌟\nКак тебя зовут?",
		Stage: string(session.StageAwaitingName),
	}, nil
}

// HandleCancel drops the session entirely, as if the user never onboarded.
func (s *DialogService) HandleCancel(ctx context.Context, event request_models.CancelEvent) (response_models.Prompt, error) {
	s.sessions.Delete(event.ChatID)
	return response_models.Prompt{
		Text:  "Диалог завершён. Напиши /start, чтобы начать заново.",
		Stage: "none",
	}, nil
}

func (s *DialogService) HandleText(ctx context.Context, event request_models.TextEvent) (response_models.Prompt, error) {
	sess, ok := s.sessions.Get(event.ChatID)
	if !ok {
		return promptStartFirst(), nil
	}

	sess.Lock()
	defer sess.Unlock()

	text := strings.TrimSpace(event.Text)

	switch sess.Stage {
	case session.StageAwaitingName:
		if text == "" {
			return response_models.Prompt{Text: "Как тебя зовут?", Stage: string(sess.Stage)}, nil
		}
		sess.Name = text
		sess.Stage = session.StageAwaitingMood
		s.sessions.Touch(sess)
		if err := s.favorites.SetUserName(ctx, event.ChatID, text); err != nil {
			s.logger.Warn("saving user name failed", zap.Int64("chat_id", event.ChatID), zap.Error(err))
		}
		return response_models.Prompt{
			Text:    fmt.Sprintf("Рад познакомиться, %s! 😊\nКак ты себя чувствуешь?", text),
			Options: moodKeyboard(),
			Stage:   string(sess.Stage),
		}, nil

	case session.StageAwaitingMood:
		if _, ok := catalogs.Moods[text]; !ok {
			return s.repromptStage(sess, "Пожалуйста, выбери настроение из списка."), nil
		}
		return s.applyMood(sess, text), nil

	case session.StageAwaitingBudget:
		if _, ok := catalogs.Budgets[text]; !ok {
			return s.repromptStage(sess, "Пожалуйста, выбери бюджет из списка."), nil
		}
		return s.applyBudget(sess, text), nil

	case session.StageAwaitingScope:
		switch text {
		case "📍 Рядом":
			return s.applyScope(sess, session.ScopeNearby), nil
		case "🏙 По городу":
			return s.applyScope(sess, session.ScopeCityWide), nil
		}
		return s.repromptStage(sess, "Пожалуйста, выбери вариант из списка."), nil

	case session.StageAwaitingCategory:
		category, ok := catalogs.CategoryByLabel(text)
		if !ok {
			return s.repromptStage(sess, "Пожалуйста, выбери категорию из списка."), nil
		}
		sess.CategoryID = category.ID
		return s.runSearch(ctx, sess), nil

	case session.StageAwaitingLocation:
		return s.repromptStage(sess, "Отправь свою локацию кнопкой ниже."), nil

	case session.StageResultsShown, session.StageIdle:
		// Reply-keyboard gateways deliver button presses as plain text.
		if action, ok := actionForLabel(text); ok {
			return s.handleAction(ctx, sess, action), nil
		}
		return s.repromptStage(sess, "Пожалуйста, выбери действие из меню."), nil
	}

	return promptStartFirst(), nil
}

func (s *DialogService) HandleLocation(ctx context.Context, event request_models.LocationEvent) (response_models.Prompt, error) {
	sess, ok := s.sessions.Get(event.ChatID)
	if !ok {
		return promptStartFirst(), nil
	}

	sess.Lock()
	defer sess.Unlock()

	if sess.Stage != session.StageAwaitingLocation {
		return s.repromptStage(sess, "Локация сейчас не нужна."), nil
	}

	sess.Location = &overpass.LatLon{Lat: event.Latitude, Lon: event.Longitude}
	return s.runSearch(ctx, sess), nil
}

func (s *DialogService) HandleMenu(ctx context.Context, event request_models.MenuEvent) (response_models.Prompt, error) {
	sess, ok := s.sessions.Get(event.ChatID)
	if !ok {
		return promptStartFirst(), nil
	}

	sess.Lock()
	defer sess.Unlock()

	id := event.ButtonID

	switch {
	case strings.HasPrefix(id, prefixMood):
		mood := strings.TrimPrefix(id, prefixMood)
		if sess.Stage != session.StageAwaitingMood {
			return s.repromptStage(sess, "Пожалуйста, выбери действие из меню."), nil
		}
		if _, known := catalogs.Moods[mood]; !known {
			return s.repromptStage(sess, "Пожалуйста, выбери настроение из списка."), nil
		}
		return s.applyMood(sess, mood), nil

	case strings.HasPrefix(id, prefixBudget):
		budget := strings.TrimPrefix(id, prefixBudget)
		if sess.Stage != session.StageAwaitingBudget {
			return s.repromptStage(sess, "Пожалуйста, выбери действие из меню."), nil
		}
		if _, known := catalogs.Budgets[budget]; !known {
			return s.repromptStage(sess, "Пожалуйста, выбери бюджет из списка."), nil
		}
		return s.applyBudget(sess, budget), nil

	case strings.HasPrefix(id, prefixScope):
		if sess.Stage != session.StageAwaitingScope {
			return s.repromptStage(sess, "Пожалуйста, выбери действие из меню."), nil
		}
		switch strings.TrimPrefix(id, prefixScope) {
		case string(session.ScopeNearby):
			return s.applyScope(sess, session.ScopeNearby), nil
		case string(session.ScopeCityWide):
			return s.applyScope(sess, session.ScopeCityWide), nil
		}
		return s.repromptStage(sess, "Пожалуйста, выбери вариант из списка."), nil

	case strings.HasPrefix(id, prefixCategory):
		if sess.Stage != session.StageAwaitingCategory {
			return s.repromptStage(sess, "Пожалуйста, выбери действие из меню."), nil
		}
		category, known := catalogs.CategoryByID(strings.TrimPrefix(id, prefixCategory))
		if !known {
			return s.repromptStage(sess, "Пожалуйста, выбери категорию из списка."), nil
		}
		sess.CategoryID = category.ID
		return s.runSearch(ctx, sess), nil

	case strings.HasPrefix(id, prefixSave):
		if sess.Stage != session.StageResultsShown {
			return s.repromptStage(sess, "Сейчас нечего сохранять."), nil
		}
		return s.saveFavorite(ctx, sess, strings.TrimPrefix(id, prefixSave)), nil

	case id == buttonNewSearch, id == buttonFavorites, id == buttonMainMenu:
		if sess.Stage != session.StageResultsShown && sess.Stage != session.StageIdle {
			return s.repromptStage(sess, "Пожалуйста, выбери действие из меню."), nil
		}
		return s.handleAction(ctx, sess, id), nil
	}

	return s.repromptStage(sess, "Пожалуйста, выбери действие из меню."), nil
}

// applyMood moves AwaitingMood -> AwaitingBudget.
func (s *DialogService) applyMood(sess *session.Session, mood string) response_models.Prompt {
	sess.Mood = mood
	sess.Stage = session.StageAwaitingBudget
	s.sessions.Touch(sess)
	return response_models.Prompt{
		Text:    "На какой бюджет ты рассчитываешь?",
		Options: budgetKeyboard(),
		Stage:   string(sess.Stage),
	}
}

// applyBudget moves AwaitingBudget -> AwaitingScope.
func (s *DialogService) applyBudget(sess *session.Session, budget string) response_models.Prompt {
	sess.Budget = budget
	sess.Stage = session.StageAwaitingScope
	s.sessions.Touch(sess)
	return response_models.Prompt{
		Text:    "Искать рядом с тобой или по всему городу?",
		Options: scopeKeyboard(),
		Stage:   string(sess.Stage),
	}
}

// applyScope is the one branch in the dialogue: nearby needs a location,
// city-wide needs a category.
func (s *DialogService) applyScope(sess *session.Session, scope session.Scope) response_models.Prompt {
	sess.Scope = scope
	if scope == session.ScopeNearby {
		sess.Stage = session.StageAwaitingLocation
		s.sessions.Touch(sess)
		return response_models.Prompt{
			Text:            "Отправь свою локацию, и я найду места рядом 📍",
			RequestLocation: true,
			Stage:           string(sess.Stage),
		}
	}
	sess.Stage = session.StageAwaitingCategory
	s.sessions.Touch(sess)
	return response_models.Prompt{
		Text:    "Какие места тебе интересны?",
		Options: categoryKeyboard(),
		Stage:   string(sess.Stage),
	}
}

// runSearch fires the fetch as part of the transition into ResultsShown.
// Zero results still advance the stage; a fetch failure keeps the session at
// the pre-fetch stage so the same step can be retried.
func (s *DialogService) runSearch(ctx context.Context, sess *session.Session) response_models.Prompt {
	places, err := s.recommendations.Fetch(ctx, sess)
	if err != nil {
		s.logger.Warn("search failed",
			zap.Int64("chat_id", sess.ChatID),
			zap.String("stage", string(sess.Stage)),
			zap.Error(err))
		return s.repromptStage(sess, "Поиск не удался, попробуй ещё раз 🔁")
	}

	sess.LastResults = places
	sess.Stage = session.StageResultsShown
	s.sessions.Touch(sess)

	if len(places) == 0 {
		return response_models.Prompt{
			Text:    "По твоему запросу ничего не найдено 😔 Попробуй новую подборку!",
			Options: [][]response_models.MenuOption{mainMenuRow()},
			Stage:   string(sess.Stage),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, ты выбрал настроение '%s' и бюджет '%s'.\n", sess.Name, sess.Mood, sess.Budget)
	b.WriteString(catalogs.Moods[sess.Mood])
	b.WriteString(" ")
	b.WriteString(catalogs.Budgets[sess.Budget])
	b.WriteString("\n\n")
	for i, p := range places {
		fmt.Fprintf(&b, "%d. %s (%.5f, %.5f)\n", i+1, p.Name, p.Lat, p.Lon)
	}

	return response_models.Prompt{
		Text:    b.String(),
		Options: resultsKeyboard(places),
		Stage:   string(sess.Stage),
	}
}

// saveFavorite appends the selected result and stays in ResultsShown.
func (s *DialogService) saveFavorite(ctx context.Context, sess *session.Session, rawIndex string) response_models.Prompt {
	index, err := strconv.Atoi(rawIndex)
	if err != nil || index < 0 || index >= len(sess.LastResults) {
		return s.repromptStage(sess, "Нет данных для добавления.")
	}

	if err := s.favorites.Append(ctx, sess.ChatID, sess.LastResults[index]); err != nil {
		return s.repromptStage(sess, "Не получилось сохранить, попробуй ещё раз.")
	}

	return response_models.Prompt{
		Text:    "Добавлено в избранное! ⭐",
		Options: resultsKeyboard(sess.LastResults),
		Stage:   string(sess.Stage),
	}
}

// handleAction covers the menu actions available from ResultsShown and Idle.
func (s *DialogService) handleAction(ctx context.Context, sess *session.Session, action string) response_models.Prompt {
	switch action {
	case buttonNewSearch:
		sess.ResetPreferences()
		sess.Stage = session.StageAwaitingMood
		s.sessions.Touch(sess)
		return response_models.Prompt{
			Text:    "Как ты себя чувствуешь?",
			Options: moodKeyboard(),
			Stage:   string(sess.Stage),
		}

	case buttonFavorites:
		places, err := s.favorites.List(ctx, sess.ChatID)
		if err != nil {
			return s.repromptStage(sess, "Не получилось загрузить избранное, попробуй ещё раз.")
		}
		if len(places) == 0 {
			return s.repromptStage(sess, "Пока что список избранного пуст.")
		}
		var b strings.Builder
		b.WriteString("⭐ Твоё избранное:\n")
		for i, p := range places {
			fmt.Fprintf(&b, "%d. %s (%.5f, %.5f)\n", i+1, p.Name, p.Latitude, p.Longitude)
		}
		return s.repromptStage(sess, b.String())

	case buttonMainMenu:
		sess.Stage = session.StageIdle
		s.sessions.Touch(sess)
		return response_models.Prompt{
			Text:    "Ты в главном меню.",
			Options: [][]response_models.MenuOption{mainMenuRow()},
			Stage:   string(sess.Stage),
		}
	}

	return s.repromptStage(sess, "Пожалуйста, выбери действие из меню.")
}

// repromptStage re-emits the keyboard for the current stage with a custom
// message. The stage itself never changes here.
func (s *DialogService) repromptStage(sess *session.Session, text string) response_models.Prompt {
	prompt := response_models.Prompt{Text: text, Stage: string(sess.Stage)}

	switch sess.Stage {
	case session.StageAwaitingMood:
		prompt.Options = moodKeyboard()
	case session.StageAwaitingBudget:
		prompt.Options = budgetKeyboard()
	case session.StageAwaitingScope:
		prompt.Options = scopeKeyboard()
	case session.StageAwaitingCategory:
		prompt.Options = categoryKeyboard()
	case session.StageAwaitingLocation:
		prompt.RequestLocation = true
	case session.StageResultsShown:
		prompt.Options = resultsKeyboard(sess.LastResults)
	case session.StageIdle:
		prompt.Options = [][]response_models.MenuOption{mainMenuRow()}
	}

	return prompt
}

func actionForLabel(label string) (string, bool) {
	switch label {
	case labelNewSearch:
		return buttonNewSearch, true
	case labelFavorites:
		return buttonFavorites, true
	case labelMainMenu:
		return buttonMainMenu, true
	}
	return "", false
}

func promptStartFirst() response_models.Prompt {
	return response_models.Prompt{
		Text:  "Напиши /start, чтобы начать.",
		Stage: "none",
	}
}

func moodKeyboard() [][]response_models.MenuOption {
	rows := make([][]response_models.MenuOption, 0, len(catalogs.MoodOrder))
	for _, mood := range catalogs.MoodOrder {
		rows = append(rows, []response_models.MenuOption{{ID: prefixMood + mood, Label: mood}})
	}
	return rows
}

func budgetKeyboard() [][]response_models.MenuOption {
	rows := make([][]response_models.MenuOption, 0, len(catalogs.BudgetOrder))
	for _, budget := range catalogs.BudgetOrder {
		rows = append(rows, []response_models.MenuOption{{ID: prefixBudget + budget, Label: budget}})
	}
	return rows
}

func scopeKeyboard() [][]response_models.MenuOption {
	return [][]response_models.MenuOption{{
		{ID: prefixScope + string(session.ScopeNearby), Label: "📍 Рядом"},
		{ID: prefixScope + string(session.ScopeCityWide), Label: "🏙 По городу"},
	}}
}

func categoryKeyboard() [][]response_models.MenuOption {
	rows := make([][]response_models.MenuOption, 0, len(catalogs.Categories))
	for _, c := range catalogs.Categories {
		rows = append(rows, []response_models.MenuOption{{ID: prefixCategory + c.ID, Label: c.Label}})
	}
	return rows
}

func mainMenuRow() []response_models.MenuOption {
	return []response_models.MenuOption{
		{ID: buttonNewSearch, Label: labelNewSearch},
		{ID: buttonFavorites, Label: labelFavorites},
	}
}

func resultsKeyboard(places []overpass.Place) [][]response_models.MenuOption {
	var rows [][]response_models.MenuOption
	for i, p := range places {
		if i >= maxResultButtons {
			break
		}
		rows = append(rows, []response_models.MenuOption{
			{ID: prefixSave + strconv.Itoa(i), Label: "⭐ " + p.Name},
		})
	}
	rows = append(rows, mainMenuRow())
	rows = append(rows, []response_models.MenuOption{{ID: buttonMainMenu, Label: labelMainMenu}})
	return rows
}
