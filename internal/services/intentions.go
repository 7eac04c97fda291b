package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rohits-web03/safehands/internal/models"
	"github.com/rohits-web03/safehands/internal/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	weightAsset    = 30
	weightContact  = 25
	weightExecutor = 25
	weightIntent   = 20

	maxPrompts = 3
)

type PromptKind string

const (
	PromptUnassigned    PromptKind = "unassigned_assets"
	PromptMissingIntent PromptKind = "missing_intent"
)

// State is everything the aggregator reads for one user.
type State struct {
	Assets      []models.DigitalAsset         `json:"assets"`
	Contacts    []models.TrustedContact       `json:"contacts"`
	Assignments []models.RelationalAssignment `json:"assignments"`
	Profile     *models.Profile               `json:"profile"`
	Social      []models.SocialIntention      `json:"socialIntentions"`
}

type PromptAction struct {
	Label  string `json:"label"`
	Target string `json:"target"`
}

type Prompt struct {
	Kind      PromptKind       `json:"kind"`
	Count     int              `json:"count"`
	AssetType models.AssetType `json:"assetType,omitempty"`
	Message   string           `json:"message"`
	Action    PromptAction     `json:"action"`
}

type Overview struct {
	Completeness       int      `json:"completeness"`
	Prompts            []Prompt `json:"prompts"`
	UnassignedCount    int      `json:"unassignedCount"`
	MissingIntentCount int      `json:"missingIntentCount"`
}

var assetEditor = PromptAction{Label: "Open asset editor", Target: "/dashboard/assets"}

// consistent keeps the active assignment rows whose asset and contact both
// exist.
func (s State) consistent() []models.RelationalAssignment {
	assets := make(map[uuid.UUID]bool, len(s.Assets))
	for _, a := range s.Assets {
		assets[a.ID] = true
	}
	contacts := make(map[uuid.UUID]bool, len(s.Contacts))
	for _, c := range s.Contacts {
		contacts[c.ID] = true
	}
	out := make([]models.RelationalAssignment, 0, len(s.Assignments))
	for _, r := range s.Assignments {
		if r.Active() && assets[r.AssetID] && contacts[r.ContactID] {
			out = append(out, r)
		}
	}
	return out
}

func (s State) hasExecutor() bool {
	if s.Profile == nil || !s.Profile.HasExecutor() {
		return false
	}
	for _, c := range s.Contacts {
		if c.ID == *s.Profile.ExecutorContactID {
			return true
		}
	}
	return false
}

// Completeness scores how much of the plan is in place, 0 to 100.
func Completeness(s State) int {
	score := 0
	if len(s.Assets) > 0 {
		score += weightAsset
	}
	if len(s.Contacts) > 0 {
		score += weightContact
	}
	if s.hasExecutor() {
		score += weightExecutor
	}
	for _, r := range s.consistent() {
		if r.HasIntent() {
			score += weightIntent
			break
		}
	}
	return min(score, 100)
}

// ReflectionPrompts suggests next steps: unassigned assets first, then
// assignments that still lack an intent.
func ReflectionPrompts(s State) []Prompt {
	rows := s.consistent()
	prompts := make([]Prompt, 0, maxPrompts)

	if unassigned := UnassignedAssets(s.Assets, rows); len(unassigned) > 0 {
		top := mostFrequentType(unassigned)
		prompts = append(prompts, Prompt{
			Kind:      PromptUnassigned,
			Count:     len(unassigned),
			AssetType: top,
			Message: fmt.Sprintf("%s no one to receive %s. Most are %s.",
				plural(len(unassigned), "asset has", "assets have"),
				plural(len(unassigned), "it", "them"),
				typeLabel(top)),
			Action: assetEditor,
		})
	}
	if missing := MissingIntent(rows); len(missing) > 0 {
		prompts = append(prompts, Prompt{
			Kind:    PromptMissingIntent,
			Count:   len(missing),
			Message: fmt.Sprintf("%s no intent yet.", plural(len(missing), "assignment has", "assignments have")),
			Action:  assetEditor,
		})
	}
	if len(prompts) > maxPrompts {
		prompts = prompts[:maxPrompts]
	}
	return prompts
}

func Aggregate(s State) Overview {
	rows := s.consistent()
	return Overview{
		Completeness:       Completeness(s),
		Prompts:            ReflectionPrompts(s),
		UnassignedCount:    len(UnassignedAssets(s.Assets, rows)),
		MissingIntentCount: len(MissingIntent(rows)),
	}
}

// mostFrequentType breaks ties by the order of models.AssetTypes.
func mostFrequentType(assets []models.DigitalAsset) models.AssetType {
	counts := make(map[models.AssetType]int)
	for _, a := range assets {
		counts[a.Type]++
	}
	var best models.AssetType
	bestN := 0
	for _, t := range models.AssetTypes {
		if counts[t] > bestN {
			best, bestN = t, counts[t]
		}
	}
	return best
}

func typeLabel(t models.AssetType) string {
	if t == "" {
		return "uncategorized"
	}
	return strings.ReplaceAll(string(t), "_", " ") + "s"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// Intentions loads a user's state and derives the overview.
type Intentions struct {
	store repositories.Store
}

func NewIntentions(store repositories.Store) *Intentions {
	return &Intentions{store: store}
}

// Load reads the five tables concurrently.
func (i *Intentions) Load(ctx context.Context, userID uuid.UUID) (State, error) {
	if i.store == nil {
		return State{}, ErrPersistenceDisabled
	}
	var st State
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.Assets, err = i.store.ListAssets(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		st.Contacts, err = i.store.ListContacts(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		st.Assignments, err = i.store.ListAssignments(gctx, userID)
		return err
	})
	g.Go(func() error {
		p, err := i.store.GetProfile(gctx, userID)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		st.Profile = &p
		return nil
	})
	g.Go(func() (err error) {
		st.Social, err = i.store.ListSocialIntentions(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return State{}, fmt.Errorf("load intentions: %w", err)
	}
	return st, nil
}

type IntentionsView struct {
	Overview Overview `json:"overview"`
	State    State    `json:"state"`
}

func (i *Intentions) View(ctx context.Context, userID uuid.UUID) (IntentionsView, error) {
	st, err := i.Load(ctx, userID)
	if err != nil {
		return IntentionsView{}, err
	}
	return IntentionsView{Overview: Aggregate(st), State: st}, nil
}
