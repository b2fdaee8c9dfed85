package service

import (
	"math/rand"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/portcullis-bot/Portcullis/model"
)

// ChallengeGenerator draws pick-the-target challenges from the icon catalog.
// The random source is injected so tests can reproduce challenges.
type ChallengeGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewChallengeGenerator(src rand.Source) *ChallengeGenerator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &ChallengeGenerator{rnd: rand.New(src)}
}

// Generate shuffles the catalog, takes the first ChallengeOptions icons as
// the options and one of them, uniformly at random, as the target.
func (g *ChallengeGenerator) Generate() (model.Challenge, error) {
	id, err := gonanoid.New()
	if err != nil {
		return model.Challenge{}, err
	}
	g.mu.Lock()
	perm := g.rnd.Perm(len(model.Icons))
	target := g.rnd.Intn(model.ChallengeOptions)
	g.mu.Unlock()
	options := make([]model.Icon, model.ChallengeOptions)
	for i := range options {
		options[i] = model.Icons[perm[i]]
	}
	return model.Challenge{
		ID:      id,
		Target:  options[target],
		Options: options,
	}, nil
}
