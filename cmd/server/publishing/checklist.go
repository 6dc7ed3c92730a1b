// Package publishing tracks readiness for shipping the web app to the Play Store.
package publishing

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownItem is returned for checklist ids that do not exist
var ErrUnknownItem = errors.New("unknown checklist item")

// Item is one step of the submission checklist
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
	Done  bool   `json:"done"`
	// Hidden items count towards progress but are not listed to the user
	Hidden bool `json:"hidden,omitempty"`
}

// Progress summarizes how far along the checklist is
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// GitCommand is one step of the terminal setup guide
type GitCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// Checklist is an ordered set of items. The zero value is empty; use
// DefaultChecklist for the submission steps.
type Checklist struct {
	items []Item
}

// DefaultChecklist returns the submission checklist in its initial state
func DefaultChecklist() *Checklist {
	return &Checklist{items: []Item{
		{ID: "hosting", Label: "Web Hosting (Vercel/Netlify)", Hint: "Dapat live ang website URL mo (HTTPS)."},
		{ID: "googleAccount", Label: "Google Play Console ($25)", Hint: "Isang beses lang na bayad para sa lifetime account."},
		{ID: "assets", Label: "Visual Assets", Hint: "Icon (512px), Feature Graphic (1024x500)."},
		{ID: "twaPackage", Label: "Generate .AAB File", Hint: "Gagamit tayo ng Bubblewrap o PWABuilder."},
		{ID: "privacyPolicy", Label: "Privacy Policy", Done: true, Hidden: true},
	}}
}

// Items returns a copy of every item, hidden ones included
func (c *Checklist) Items() []Item {
	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Toggle flips the done state of id
func (c *Checklist) Toggle(id string) error {
	i, err := c.index(id)
	if err != nil {
		return err
	}
	c.items[i].Done = !c.items[i].Done
	return nil
}

// Set forces the done state of id
func (c *Checklist) Set(id string, done bool) error {
	i, err := c.index(id)
	if err != nil {
		return err
	}
	c.items[i].Done = done
	return nil
}

// Apply sets every id in states, stopping at the first unknown one
func (c *Checklist) Apply(states map[string]bool) error {
	for id, done := range states {
		if err := c.Set(id, done); err != nil {
			return err
		}
	}
	return nil
}

// Progress counts completed items over all items, hidden ones included
func (c *Checklist) Progress() Progress {
	p := Progress{Total: len(c.items)}
	for _, item := range c.items {
		if item.Done {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
	}
	return p
}

func (c *Checklist) index(id string) (int, error) {
	for i, item := range c.items {
		if item.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownItem, id)
}

// GitCommands returns the steps for pushing the project to GitHub
func GitCommands() []GitCommand {
	return []GitCommand{
		{Command: "git init", Description: "Initialize your project"},
		{Command: "git add .", Description: "Add all files for upload"},
		{Command: `git commit -m "Initial Sikat App"`, Description: "Save your changes"},
		{Command: "git branch -M main", Description: "Set main branch"},
		{Command: "git remote add origin [YOUR_REPO_URL]", Description: "Link to GitHub"},
		{Command: "git push -u origin main", Description: "Upload to GitHub"},
	}
}
