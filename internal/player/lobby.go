// Package player tracks who is connected to a shared gotris host. Every
// player runs their own game; the lobby only knows names, whether a game is
// in progress and each player's best score this visit.
package player

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Player struct {
	ID       string
	Name     string
	JoinedAt time.Time
	Playing  bool
	Games    int
	Best     int
}

type Lobby struct {
	mu      sync.RWMutex
	players map[string]*Player
	now     func() time.Time
}

func NewLobby() *Lobby {
	return &Lobby{
		players: make(map[string]*Player),
		now:     time.Now,
	}
}

// AddPlayer registers a new connection and returns a copy of its record.
func (l *Lobby) AddPlayer(name string) Player {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.add(name)
}

// TryAddPlayer registers a new connection unless limit players are already
// present. A limit of zero or less admits everyone.
func (l *Lobby) TryAddPlayer(name string, limit int) (Player, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limit > 0 && len(l.players) >= limit {
		return Player{}, false
	}
	return l.add(name), true
}

func (l *Lobby) add(name string) Player {
	p := &Player{
		ID:       uuid.NewString(),
		Name:     name,
		JoinedAt: l.now(),
	}
	l.players[p.ID] = p
	return *p
}

func (l *Lobby) RemovePlayer(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.players, id)
}

func (l *Lobby) GetPlayer(id string) (Player, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	p, ok := l.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// StartGame marks the player as playing and counts the game.
func (l *Lobby) StartGame(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.players[id]; ok {
		p.Playing = true
		p.Games++
	}
}

// FinishGame marks the player idle and keeps score if it is their best.
func (l *Lobby) FinishGame(id string, score int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if p, ok := l.players[id]; ok {
		p.Playing = false
		if score > p.Best {
			p.Best = score
		}
	}
}

// GetAllPlayers returns copies of every record, earliest arrival first.
func (l *Lobby) GetAllPlayers() []Player {
	l.mu.RLock()
	defer l.mu.RUnlock()

	players := make([]Player, 0, len(l.players))
	for _, p := range l.players {
		players = append(players, *p)
	}
	sort.Slice(players, func(i, j int) bool {
		if players[i].JoinedAt.Equal(players[j].JoinedAt) {
			return players[i].ID < players[j].ID
		}
		return players[i].JoinedAt.Before(players[j].JoinedAt)
	})
	return players
}

func (l *Lobby) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.players)
}

func (l *Lobby) CountPlaying() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	count := 0
	for _, p := range l.players {
		if p.Playing {
			count++
		}
	}
	return count
}
