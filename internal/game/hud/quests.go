package hud

import (
	"fmt"
	"strings"
)

// Objective is what a quest measures.
type Objective int

const (
	WalkDistance Objective = iota
	VisitTrees
)

// Quest is one exploration goal.
type Quest struct {
	Title     string
	Objective Objective
	Target    float32
	Done      bool
}

// Progress is the exploration state the quest log evaluates.
type Progress struct {
	Distance     float32 // meters walked on the XZ plane
	TreesVisited int
	TreesTotal   int
}

// QuestLog tracks quests and writes them to the quest-list element.
type QuestLog struct {
	surface  Surface
	quests   []Quest
	lastText string
	written  bool
}

// NewQuestLog creates a log writing to surface.
func NewQuestLog(surface Surface, quests []Quest) *QuestLog {
	return &QuestLog{surface: surface, quests: quests}
}

// DefaultQuests returns the starter quests for a forest with treeCount trees.
func DefaultQuests(treeCount int) []Quest {
	quests := []Quest{
		{Title: "Stretch your legs", Objective: WalkDistance, Target: 25},
		{Title: "Go for a hike", Objective: WalkDistance, Target: 150},
	}
	if treeCount > 0 {
		quests = append(quests,
			Quest{Title: "Visit a tree", Objective: VisitTrees, Target: 1},
			Quest{Title: "Tree surveyor", Objective: VisitTrees, Target: float32(min(treeCount, 10))},
		)
	}
	return quests
}

// Quests returns the current quest states.
func (q *QuestLog) Quests() []Quest { return q.quests }

// Completed returns how many quests are done.
func (q *QuestLog) Completed() int {
	n := 0
	for _, qu := range q.quests {
		if qu.Done {
			n++
		}
	}
	return n
}

// Update marks finished quests and rewrites the quest list when its text
// changed. Quests never become undone.
func (q *QuestLog) Update(p Progress) error {
	for i := range q.quests {
		qu := &q.quests[i]
		if !qu.Done && current(*qu, p) >= qu.Target {
			qu.Done = true
		}
	}

	text := q.render(p)
	if q.written && text == q.lastText {
		return nil
	}
	if err := q.surface.SetText(QuestList, text); err != nil {
		return fmt.Errorf("updating quest list: %w", err)
	}
	q.lastText, q.written = text, true
	return nil
}

func current(qu Quest, p Progress) float32 {
	switch qu.Objective {
	case WalkDistance:
		return p.Distance
	case VisitTrees:
		return float32(p.TreesVisited)
	default:
		return 0
	}
}

func (q *QuestLog) render(p Progress) string {
	var sb strings.Builder
	for i, qu := range q.quests {
		if i > 0 {
			sb.WriteByte('\n')
		}
		mark := "[ ]"
		if qu.Done {
			mark = "[x]"
		}
		cur := min(current(qu, p), qu.Target)
		switch qu.Objective {
		case WalkDistance:
			fmt.Fprintf(&sb, "%s %s: walk %.0f m (%.0f/%.0f)", mark, qu.Title, qu.Target, cur, qu.Target)
		case VisitTrees:
			fmt.Fprintf(&sb, "%s %s: visit %.0f trees (%.0f/%.0f)", mark, qu.Title, qu.Target, cur, qu.Target)
		}
	}
	return sb.String()
}
