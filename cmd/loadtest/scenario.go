package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Operation names accepted in scenario files
const (
	opMarketTrends      = "market_trends"
	opProfitAdvice      = "profit_advice"
	opRegistrationGuide = "registration_guide"
	opPlayStoreMetadata = "play_store_metadata"
	opChecklist         = "checklist"
	opMentorChat        = "mentor_chat"
)

// Scenario describes the traffic mix a load test generates
type Scenario struct {
	Users           int         `yaml:"users"`
	RequestsPerUser int         `yaml:"requests_per_user"`
	Duration        string      `yaml:"duration"`
	RPS             float64     `yaml:"rps"`
	Burst           int         `yaml:"burst"`
	Operations      []Operation `yaml:"operations"`

	duration    time.Duration
	totalWeight int
}

// Operation is one weighted entry of the mix
type Operation struct {
	Name     string   `yaml:"name"`
	Weight   int      `yaml:"weight"`
	Location string   `yaml:"location,omitempty"`
	Business string   `yaml:"business,omitempty"`
	Capital  string   `yaml:"capital,omitempty"`
	Expenses string   `yaml:"expenses,omitempty"`
	Messages []string `yaml:"messages,omitempty"`
}

// DefaultScenario is a light mix dominated by mentor chat turns
func DefaultScenario() *Scenario {
	s := &Scenario{
		Users:           5,
		RequestsPerUser: 3,
		Duration:        "30s",
		RPS:             8,
		Burst:           1,
		Operations: []Operation{
			{Name: opMentorChat, Weight: 3, Messages: []string{
				"Paano ko mapapalago ang sari-sari store ko?",
				"Magkano dapat ang patong ko sa presyo ng kakanin?",
				"Saan ako pwedeng kumuha ng murang supplier ng ukay?",
				"Dapat ba akong mag-live selling sa TikTok?",
			}},
			{Name: opMarketTrends, Weight: 1, Location: "Quezon City"},
			{Name: opProfitAdvice, Weight: 1, Business: "Milk tea stall", Capital: "30000", Expenses: "8000"},
			{Name: opRegistrationGuide, Weight: 1, Business: "Home bakery"},
			{Name: opChecklist, Weight: 1},
		},
	}
	if err := s.validate(); err != nil {
		panic(err)
	}
	return s
}

// LoadScenario reads a YAML scenario from path
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) validate() error {
	if s.Users <= 0 {
		return fmt.Errorf("scenario: users must be positive, got %d", s.Users)
	}
	if s.RequestsPerUser <= 0 {
		return fmt.Errorf("scenario: requests_per_user must be positive, got %d", s.RequestsPerUser)
	}
	if s.RPS <= 0 {
		return fmt.Errorf("scenario: rps must be positive, got %v", s.RPS)
	}
	if s.Burst <= 0 {
		s.Burst = 1
	}

	s.duration = 30 * time.Second
	if s.Duration != "" {
		d, err := time.ParseDuration(s.Duration)
		if err != nil || d <= 0 {
			return fmt.Errorf("scenario: invalid duration %q", s.Duration)
		}
		s.duration = d
	}

	if len(s.Operations) == 0 {
		return fmt.Errorf("scenario: at least one operation is required")
	}
	s.totalWeight = 0
	for i, op := range s.Operations {
		switch op.Name {
		case opMarketTrends, opProfitAdvice, opRegistrationGuide, opPlayStoreMetadata, opChecklist, opMentorChat:
		default:
			return fmt.Errorf("scenario: unknown operation %q", op.Name)
		}
		if op.Weight <= 0 {
			return fmt.Errorf("scenario: operation %q needs a positive weight", op.Name)
		}
		if op.Name == opMentorChat && len(op.Messages) == 0 {
			return fmt.Errorf("scenario: operation %q needs messages", op.Name)
		}
		s.totalWeight += s.Operations[i].Weight
	}
	return nil
}

// pick spreads request n over the operations in proportion to their weights
func (s *Scenario) pick(n int) Operation {
	slot := n % s.totalWeight
	for _, op := range s.Operations {
		if slot < op.Weight {
			return op
		}
		slot -= op.Weight
	}
	return s.Operations[len(s.Operations)-1]
}
