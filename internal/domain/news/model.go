package news

import "time"

// Item is one press release, scoped to the week it was posted in.
type Item struct {
	ID        int64
	Season    int
	Week      int
	Text      string
	CreatedAt time.Time
}
