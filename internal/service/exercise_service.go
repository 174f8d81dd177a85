package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ronrevv/wolverinez-workout-planner/internal/cache"
	"github.com/ronrevv/wolverinez-workout-planner/internal/domain"
	"github.com/ronrevv/wolverinez-workout-planner/internal/metrics"

	"github.com/google/uuid"
)

// muscleGroups are the catalog groups the API accepts, in display order.
var muscleGroups = []string{
	"chest", "back", "shoulders", "biceps", "triceps",
	"forearms", "abdominals", "quadriceps", "hamstrings",
	"glutes", "calves",
}

// --- Service Interface ---
type ExerciseService interface {
	// ListMuscleGroups returns the selectable catalog groups.
	ListMuscleGroups() []string
	// GetExercises returns the catalog for one muscle group: cache first,
	// then the upstream API, then the built-in fallback list. Unknown groups
	// serve the chest list; the caller always gets a non-empty catalog.
	GetExercises(ctx context.Context, muscleGroup string) ([]domain.Exercise, error)
}

// --- Service Implementation ---

type exerciseService struct {
	cache      cache.ExerciseCache
	httpClient *http.Client
	apiURL     string
	apiKey     string
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseCache cache.ExerciseCache, apiURL, apiKey string, timeout time.Duration) ExerciseService {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &exerciseService{
		cache:      exerciseCache,
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
		apiKey:     apiKey,
	}
}

// ListMuscleGroups returns the selectable groups.
func (s *exerciseService) ListMuscleGroups() []string {
	groups := make([]string, len(muscleGroups))
	copy(groups, muscleGroups)
	return groups
}

// GetExercises serves the catalog for one muscle group.
func (s *exerciseService) GetExercises(ctx context.Context, muscleGroup string) ([]domain.Exercise, error) {
	group := strings.ToLower(strings.TrimSpace(muscleGroup))
	if !validMuscleGroup(group) {
		log.Printf("WARN: unknown muscle group %q, serving chest catalog", muscleGroup)
		group = "chest"
	}

	if s.cache != nil {
		if exercises, ok := s.cache.Get(ctx, group); ok && len(exercises) > 0 {
			metrics.RecordExerciseFetch("cache")
			return exercises, nil
		}
	}

	exercises, err := s.fetchUpstream(ctx, group)
	if err != nil || len(exercises) == 0 {
		if err != nil {
			log.Printf("WARN: upstream exercise fetch failed for group %s: %v", group, err)
		}
		metrics.RecordExerciseFetch("fallback")
		return fallbackExercises(group), nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, group, exercises)
	}
	metrics.RecordExerciseFetch("upstream")
	return exercises, nil
}

func validMuscleGroup(group string) bool {
	for _, g := range muscleGroups {
		if g == group {
			return true
		}
	}
	return false
}

// upstreamExercise matches the upstream API's response shape.
type upstreamExercise struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Muscle       string `json:"muscle"`
	Equipment    string `json:"equipment"`
	Difficulty   string `json:"difficulty"`
	Instructions string `json:"instructions"`
}

// fetchUpstream queries the external exercise API for one muscle group.
// An empty API key disables the call entirely.
func (s *exerciseService) fetchUpstream(ctx context.Context, group string) ([]domain.Exercise, error) {
	if s.apiKey == "" || s.apiURL == "" {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s?muscle=%s", s.apiURL, url.QueryEscape(group))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	req.Header.Set("X-Api-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	var raw []upstreamExercise
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode upstream response: %w", err)
	}

	exercises := make([]domain.Exercise, 0, len(raw))
	for _, e := range raw {
		if e.Name == "" {
			continue
		}
		exercises = append(exercises, domain.Exercise{
			ID:          uuid.NewString(),
			Name:        e.Name,
			Equipment:   e.Equipment,
			Description: e.Instructions,
			Difficulty:  e.Difficulty,
			MuscleGroup: group,
			Type:        e.Type,
		})
	}
	return exercises, nil
}

// fallbackExercises is the built-in catalog, served when the upstream API is
// unavailable or not configured.
func fallbackExercises(group string) []domain.Exercise {
	entries, ok := fallbackCatalog[group]
	if !ok {
		return nil
	}
	exercises := make([]domain.Exercise, len(entries))
	for i, e := range entries {
		e.MuscleGroup = group
		e.ID = fmt.Sprintf("builtin-%s-%d", group, i+1)
		exercises[i] = e
	}
	return exercises
}

var fallbackCatalog = map[string][]domain.Exercise{
	"chest": {
		{Name: "Barbell Bench Press", Equipment: "barbell", Difficulty: "intermediate", Type: "strength", Description: "Lie on a flat bench, lower the bar to mid-chest and press back up."},
		{Name: "Incline Dumbbell Press", Equipment: "dumbbell", Difficulty: "intermediate", Type: "strength", Description: "Press dumbbells upward from an incline bench set to roughly 30 degrees."},
		{Name: "Push-Up", Equipment: "body only", Difficulty: "beginner", Type: "strength", Description: "Lower your chest to the floor keeping a straight line from head to heels, then push up."},
		{Name: "Cable Fly", Equipment: "cable", Difficulty: "beginner", Type: "strength", Description: "Bring the cable handles together in front of your chest with a slight elbow bend."},
	},
	"back": {
		{Name: "Pull-Up", Equipment: "body only", Difficulty: "intermediate", Type: "strength", Description: "Hang from a bar with an overhand grip and pull your chin over the bar."},
		{Name: "Barbell Row", Equipment: "barbell", Difficulty: "intermediate", Type: "strength", Description: "Hinge at the hips and row the bar to your lower ribs."},
		{Name: "Lat Pulldown", Equipment: "machine", Difficulty: "beginner", Type: "strength", Description: "Pull the bar down to your upper chest with a wide grip."},
		{Name: "Seated Cable Row", Equipment: "cable", Difficulty: "beginner", Type: "strength", Description: "Pull the handle to your torso keeping your back neutral."},
	},
	"shoulders": {
		{Name: "Overhead Press", Equipment: "barbell", Difficulty: "intermediate", Type: "strength", Description: "Press the bar from shoulder height to lockout overhead."},
		{Name: "Lateral Raise", Equipment: "dumbbell", Difficulty: "beginner", Type: "strength", Description: "Raise the dumbbells out to the sides to shoulder height."},
		{Name: "Face Pull", Equipment: "cable", Difficulty: "beginner", Type: "strength", Description: "Pull the rope toward your face with elbows high, squeezing the rear delts."},
	},
	"biceps": {
		{Name: "Barbell Curl", Equipment: "barbell", Difficulty: "beginner", Type: "strength", Description: "Curl the bar up keeping your elbows at your sides."},
		{Name: "Hammer Curl", Equipment: "dumbbell", Difficulty: "beginner", Type: "strength", Description: "Curl with a neutral grip, palms facing each other."},
		{Name: "Incline Dumbbell Curl", Equipment: "dumbbell", Difficulty: "intermediate", Type: "strength", Description: "Curl from a stretched position while seated on an incline bench."},
	},
	"triceps": {
		{Name: "Close-Grip Bench Press", Equipment: "barbell", Difficulty: "intermediate", Type: "strength", Description: "Bench press with hands shoulder-width apart, elbows tucked."},
		{Name: "Triceps Pushdown", Equipment: "cable", Difficulty: "beginner", Type: "strength", Description: "Extend your elbows fully against the cable, keeping upper arms still."},
		{Name: "Overhead Triceps Extension", Equipment: "dumbbell", Difficulty: "beginner", Type: "strength", Description: "Lower a dumbbell behind your head and extend back overhead."},
	},
	"forearms": {
		{Name: "Wrist Curl", Equipment: "barbell", Difficulty: "beginner", Type: "strength", Description: "Curl the bar with your wrists while forearms rest on a bench."},
		{Name: "Farmer's Walk", Equipment: "dumbbell", Difficulty: "beginner", Type: "strength", Description: "Carry heavy dumbbells at your sides walking tall for distance or time."},
	},
	"abdominals": {
		{Name: "Plank", Equipment: "body only", Difficulty: "beginner", Type: "strength", Description: "Hold a straight line from head to heels on your forearms."},
		{Name: "Hanging Leg Raise", Equipment: "body only", Difficulty: "intermediate", Type: "strength", Description: "Hang from a bar and raise your legs to hip height or above."},
		{Name: "Cable Crunch", Equipment: "cable", Difficulty: "beginner", Type: "strength", Description: "Kneel facing the cable and crunch downward, flexing the spine."},
	},
	"quadriceps": {
		{Name: "Barbell Back Squat", Equipment: "barbell", Difficulty: "intermediate", Type: "strength", Description: "Squat to at least parallel with the bar on your upper back."},
		{Name: "Leg Press", Equipment: "machine", Difficulty: "beginner", Type: "strength", Description: "Press the sled away, stopping short of locking the knees."},
		{Name: "Walking Lunge", Equipment: "dumbbell", Difficulty: "beginner", Type: "strength", Description: "Step forward into a lunge, alternating legs as you walk."},
	},
	"hamstrings": {
		{Name: "Romanian Deadlift", Equipment: "barbell", Difficulty: "intermediate", Type: "strength", Description: "Hinge at the hips with a slight knee bend, lowering the bar along your legs."},
		{Name: "Lying Leg Curl", Equipment: "machine", Difficulty: "beginner", Type: "strength", Description: "Curl the pad toward your glutes lying face down."},
	},
	"glutes": {
		{Name: "Hip Thrust", Equipment: "barbell", Difficulty: "intermediate", Type: "strength", Description: "Drive your hips up with your upper back on a bench, squeezing at the top."},
		{Name: "Glute Bridge", Equipment: "body only", Difficulty: "beginner", Type: "strength", Description: "Lying on your back, drive your hips up and hold briefly."},
		{Name: "Bulgarian Split Squat", Equipment: "dumbbell", Difficulty: "intermediate", Type: "strength", Description: "Squat on one leg with the rear foot elevated on a bench."},
	},
	"calves": {
		{Name: "Standing Calf Raise", Equipment: "machine", Difficulty: "beginner", Type: "strength", Description: "Rise onto your toes through a full range of motion."},
		{Name: "Seated Calf Raise", Equipment: "machine", Difficulty: "beginner", Type: "strength", Description: "Raise your heels with knees bent to bias the soleus."},
	},
}
