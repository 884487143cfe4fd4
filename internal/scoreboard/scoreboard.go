// Package scoreboard keeps the client-visible teams: named containers whose
// name drives list ordering and whose prefix and suffix decorate members.
//
// A Board is not safe for concurrent use; it is owned by the executor.
package scoreboard

import (
	"fmt"
	"sort"
)

type OptionStatus string

const (
	OptionAlways OptionStatus = "always"
	OptionNever  OptionStatus = "never"
)

// Team is a read-only snapshot of a container.
type Team struct {
	Name              string
	Prefix            string
	Suffix            string
	NameTagVisibility OptionStatus
	CollisionRule     OptionStatus
	Entries           []string
}

type team struct {
	prefix    string
	suffix    string
	nameTag   OptionStatus
	collision OptionStatus
	entries   map[string]struct{}
}

type Board struct {
	teams     map[string]*team
	byEntry   map[string]string
	mutations int
}

func NewBoard() *Board {
	return &Board{
		teams:   make(map[string]*team),
		byEntry: make(map[string]string),
	}
}

func (b *Board) Team(name string) (Team, bool) {
	t, ok := b.teams[name]
	if !ok {
		return Team{}, false
	}
	return snapshot(name, t), true
}

// TeamOf returns the team an entry currently belongs to.
func (b *Board) TeamOf(entry string) (string, bool) {
	name, ok := b.byEntry[entry]
	return name, ok
}

func (b *Board) Register(name string) error {
	if _, ok := b.teams[name]; ok {
		return fmt.Errorf("team %q already registered", name)
	}
	b.teams[name] = &team{
		nameTag:   OptionAlways,
		collision: OptionAlways,
		entries:   make(map[string]struct{}),
	}
	b.mutations++
	return nil
}

func (b *Board) Unregister(name string) {
	t, ok := b.teams[name]
	if !ok {
		return
	}
	for entry := range t.entries {
		delete(b.byEntry, entry)
	}
	delete(b.teams, name)
	b.mutations++
}

func (b *Board) SetText(name, prefix, suffix string) error {
	t, ok := b.teams[name]
	if !ok {
		return fmt.Errorf("team %q not registered", name)
	}
	if t.prefix == prefix && t.suffix == suffix {
		return nil
	}
	t.prefix = prefix
	t.suffix = suffix
	b.mutations++
	return nil
}

// AddEntry moves entry into the team; an entry belongs to at most one team.
func (b *Board) AddEntry(name, entry string) error {
	t, ok := b.teams[name]
	if !ok {
		return fmt.Errorf("team %q not registered", name)
	}
	if current, ok := b.byEntry[entry]; ok {
		if current == name {
			return nil
		}
		delete(b.teams[current].entries, entry)
	}
	t.entries[entry] = struct{}{}
	b.byEntry[entry] = name
	b.mutations++
	return nil
}

// RemoveEntry returns how many entries are left in the team.
func (b *Board) RemoveEntry(name, entry string) (int, error) {
	t, ok := b.teams[name]
	if !ok {
		return 0, fmt.Errorf("team %q not registered", name)
	}
	if _, ok := t.entries[entry]; ok {
		delete(t.entries, entry)
		delete(b.byEntry, entry)
		b.mutations++
	}
	return len(t.entries), nil
}

func (b *Board) Teams() []Team {
	out := make([]Team, 0, len(b.teams))
	for name, t := range b.teams {
		out = append(out, snapshot(name, t))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Mutations counts state-changing calls; unchanged writes are not counted.
func (b *Board) Mutations() int {
	return b.mutations
}

func snapshot(name string, t *team) Team {
	entries := make([]string, 0, len(t.entries))
	for e := range t.entries {
		entries = append(entries, e)
	}
	sort.Strings(entries)
	return Team{
		Name:              name,
		Prefix:            t.prefix,
		Suffix:            t.suffix,
		NameTagVisibility: t.nameTag,
		CollisionRule:     t.collision,
		Entries:           entries,
	}
}
