package ingest

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pvmelo/focuserp/internal/model"
)

// SuggestedEmojis is the pool a new category draws from when the batch
// does not carry presentation data of its own.
var SuggestedEmojis = []string{
	"📚", "📝", "💼", "🏠", "🛒", "🎯", "🧹", "💡", "📅", "🕒",
	"🧑‍💻", "📈", "🛠️", "🎓", "🏃‍♂️", "🍎", "🎵", "🧘", "🚀", "🌟",
}

// Merge folds a normalized batch into the document in place and reports
// exactly what it created. Categories are matched by trimmed, lower-cased
// name; a match reuses the existing id, a miss creates a category with a
// random emoji and color. The lookup is updated as categories are created,
// so two entries with the same name inside one batch share one category.
//
// Tasks with empty trimmed text and sub-task strings that trim to empty
// are skipped silently and excluded from the counts. New tasks land at the
// head of their category's list, keeping the freshest batch first.
func Merge(data *model.AppData, batch []ParsedCategory, now time.Time) Counts {
	data.Heal()

	byName := make(map[string]string, len(data.Categories))
	for id, cat := range data.Categories {
		byName[categoryKey(cat.Name)] = id
	}

	var counts Counts
	created := map[string][]model.Task{}
	order := []string{}

	for _, pc := range batch {
		name := strings.TrimSpace(pc.Name)
		if name == "" {
			name = implicitCategoryName
		}

		catID, ok := byName[categoryKey(name)]
		if !ok {
			cat := model.Category{
				ID:    uuid.NewString(),
				Name:  name,
				Emoji: randomEmoji(),
				Color: randomColor(),
			}
			data.Categories[cat.ID] = cat
			byName[categoryKey(name)] = cat.ID
			catID = cat.ID
			counts.Categories++
		}

		for _, pt := range pc.Tasks {
			text := strings.TrimSpace(pt.Text)
			if text == "" {
				continue
			}

			task := model.Task{
				ID:         uuid.NewString(),
				Text:       text,
				CategoryID: catID,
				CreatedAt:  now,
				SubTasks:   []model.SubTask{},
			}
			if when := parseWhen(pt.When); when != nil {
				task.Alarm = when
			}
			for _, st := range pt.SubTasks {
				st = strings.TrimSpace(st)
				if st == "" {
					continue
				}
				task.SubTasks = append(task.SubTasks, model.SubTask{
					ID:   uuid.NewString(),
					Text: st,
				})
				counts.SubTasks++
			}

			if _, seen := created[catID]; !seen {
				order = append(order, catID)
			}
			created[catID] = append(created[catID], task)
			counts.Tasks++
		}
	}

	// Prepend each category's new tasks as one block so the batch keeps
	// its internal order while still sorting before older tasks.
	for _, catID := range order {
		data.Tasks[catID] = append(created[catID], data.Tasks[catID]...)
	}

	return counts
}

func categoryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func randomEmoji() string {
	return SuggestedEmojis[rand.Intn(len(SuggestedEmojis))]
}

func randomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}

// whenLayouts are the date shapes accepted for a task alarm, most
// specific first. Anything else is dropped silently.
var whenLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseWhen(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range whenLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
