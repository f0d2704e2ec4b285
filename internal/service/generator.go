package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/pageza/recipe-catalog/backend/internal/model"
)

// Defaults applied by ParseRecipe to fields missing from a completion
const (
	DefaultRecipeName     = "Unnamed Recipe"
	DefaultPrepTime       = 30
	DefaultGeneratedTag   = model.TagOther
	DefaultGeneratedState = model.StatusToTry
)

// RecipeGenerator produces a candidate recipe for a name. The result has an
// id but is not yet part of any store.
type RecipeGenerator interface {
	Generate(ctx context.Context, name string) (*model.Recipe, error)
}

var (
	cannedIngredients = []string{
		"1 cup of ingredient A",
		"2 tablespoons of ingredient B",
		"3 slices of ingredient C",
		"Salt to taste",
		"1 teaspoon of spice D",
	}
	cannedInstructions = []string{
		"Mix all ingredients.",
		"Cook on medium heat for 15 minutes.",
		"Let it cool for 5 minutes.",
		"Serve and enjoy!",
	}
)

// RandomGenerator builds placeholder recipes from canned data. It never
// calls out of process and is used when no LLM is configured.
type RandomGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

var _ RecipeGenerator = (*RandomGenerator)(nil)

// NewRandomGenerator creates a RandomGenerator. A nil rng is replaced by a
// time seeded source.
func NewRandomGenerator(rng *rand.Rand) *RandomGenerator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &RandomGenerator{rng: rng}
}

// Generate returns a recipe named name with three random canned
// ingredients, the canned steps and random enum values.
func (g *RandomGenerator) Generate(_ context.Context, name string) (*model.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "Please enter a recipe name."}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	picks := g.rng.Perm(len(cannedIngredients))[:3]
	ingredients := lo.Map(picks, func(i int, _ int) string { return cannedIngredients[i] })

	return &model.Recipe{
		ID:           uuid.NewString(),
		Name:         name,
		Ingredients:  strings.Join(ingredients, ", "),
		CuisineType:  model.Cuisines[g.rng.IntN(len(model.Cuisines))],
		PrepTime:     10 + g.rng.IntN(51),
		Instructions: append([]string(nil), cannedInstructions...),
		Tag:          model.Tags[g.rng.IntN(len(model.Tags))],
		Status:       model.Statuses[g.rng.IntN(len(model.Statuses))],
	}, nil
}

const recipeSystemPrompt = "You are a professional chef. Reply with a single JSON object and nothing else."

// BuildRecipePrompt returns the prompt asking the model for a recipe as JSON
func BuildRecipePrompt(name string) string {
	return fmt.Sprintf(`Create a recipe for "%s".
Return only a JSON object with exactly these fields:
{
    "name": "Recipe name",
    "ingredients": ["ingredient 1", "ingredient 2"],
    "cuisine_type": "One of: %s",
    "prep_time": 30,
    "instructions": ["Step 1", "Step 2"],
    "tag": "One of: %s",
    "status": "One of: %s"
}
prep_time must be an integer number of minutes.`,
		name,
		joinValues(model.Cuisines),
		joinValues(model.Tags),
		joinValues(model.Statuses),
	)
}

// AIGenerator asks a Completer for a recipe and parses the reply
type AIGenerator struct {
	completer Completer
	logger    *zap.Logger
}

var _ RecipeGenerator = (*AIGenerator)(nil)

// NewAIGenerator creates an AIGenerator
func NewAIGenerator(completer Completer, logger *zap.Logger) *AIGenerator {
	return &AIGenerator{completer: completer, logger: logger}
}

// Generate sends one completion request for name. There are no retries.
func (g *AIGenerator) Generate(ctx context.Context, name string) (*model.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "Please enter a recipe name."}
	}

	text, err := g.completer.Complete(ctx, BuildRecipePrompt(name))
	if err != nil {
		var remote *RemoteCallError
		if !errors.As(err, &remote) {
			err = &RemoteCallError{Err: err}
		}
		g.logger.Warn("recipe completion failed", zap.String("name", name), zap.Error(err))
		return nil, err
	}

	recipe, err := ParseRecipe(text)
	if err != nil {
		g.logger.Warn("recipe completion unparseable", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	return recipe, nil
}

// stringList accepts either a JSON array of strings or a single string
type stringList struct {
	items  []string
	joined string
	isText bool
}

func (l *stringList) UnmarshalJSON(data []byte) error {
	var items []string
	if err := json.Unmarshal(data, &items); err == nil {
		l.items = items
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		l.joined = text
		l.isText = true
		return nil
	}
	return fmt.Errorf("expected an array of strings or a string")
}

// minutes accepts a number or a string starting with a number
type minutes struct {
	value int
}

var leadingNumber = regexp.MustCompile(`^\s*(\d+)`)

// maxPrepMinutes bounds accepted values; anything larger is treated as unparseable
const maxPrepMinutes = math.MaxInt32

// UnmarshalJSON leaves value at zero for out of range input so the default applies
func (m *minutes) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		if num >= 1 && num <= maxPrepMinutes {
			m.value = int(num)
		}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		if match := leadingNumber.FindStringSubmatch(text); match != nil {
			if n, err := strconv.Atoi(match[1]); err == nil && n <= maxPrepMinutes {
				m.value = n
			}
		}
		return nil
	}
	return fmt.Errorf("invalid prep_time format")
}

type generatedRecipe struct {
	Name         string      `json:"name"`
	Ingredients  *stringList `json:"ingredients"`
	CuisineType  string      `json:"cuisine_type"`
	PrepTime     *minutes    `json:"prep_time"`
	Instructions *stringList `json:"instructions"`
	Tag          string      `json:"tag"`
	Status       string      `json:"status"`
}

// ParseRecipe decodes completion text into a recipe. Missing or out of
// range fields fall back to defaults; text that is not a JSON object is a
// ParseError.
func ParseRecipe(text string) (*model.Recipe, error) {
	var data *generatedRecipe
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &data); err != nil {
		return nil, &ParseError{Err: err}
	}
	if data == nil {
		return nil, &ParseError{Err: errors.New("expected a JSON object")}
	}

	recipe := &model.Recipe{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(data.Name),
		CuisineType:  model.CuisineOther,
		PrepTime:     DefaultPrepTime,
		Instructions: []string{},
		Tag:          DefaultGeneratedTag,
		Status:       DefaultGeneratedState,
	}
	if recipe.Name == "" {
		recipe.Name = DefaultRecipeName
	}

	if data.Ingredients != nil {
		if data.Ingredients.isText {
			recipe.Ingredients = strings.TrimSpace(data.Ingredients.joined)
		} else {
			recipe.Ingredients = strings.Join(model.CleanSteps(data.Ingredients.items), ", ")
		}
	}
	if data.Instructions != nil {
		if data.Instructions.isText {
			recipe.Instructions = model.CleanSteps(strings.Split(data.Instructions.joined, "\n"))
		} else {
			recipe.Instructions = model.CleanSteps(data.Instructions.items)
		}
	}
	if data.PrepTime != nil && data.PrepTime.value > 0 {
		recipe.PrepTime = data.PrepTime.value
	}
	if c, ok := model.ParseCuisine(data.CuisineType); ok {
		recipe.CuisineType = c
	}
	if t, ok := model.ParseTag(data.Tag); ok {
		recipe.Tag = t
	}
	if s, ok := model.ParseStatus(data.Status); ok && s != model.StatusNotSet {
		recipe.Status = s
	}

	return recipe, nil
}

// isFenceDelimiter reports whether r ends a fence language tag
func isFenceDelimiter(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '+' && r != '_'
}

// stripCodeFence removes a surrounding Markdown code fence, if any
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		// single line fence, possibly with a language tag: ```json {...}```
		text = strings.TrimLeft(strings.TrimPrefix(text, "```"), " \t")
		if i := strings.IndexFunc(text, isFenceDelimiter); i > 0 {
			text = text[i:]
		}
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
