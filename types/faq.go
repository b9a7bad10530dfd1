package types

const (
	FAQ_STATUS_PUBLISH = "publish"
	FAQ_STATUS_DRAFT   = "draft"
)

// FaqDocument is one question/answer topic as stored in the corpus.
// Body is rich HTML authored in the editor; everything downstream works
// on the stripped plain text.
type FaqDocument struct {
	ID        string `json:"id" bson:"_id,omitempty"`
	Title     string `json:"title" bson:"title"`
	Slug      string `json:"slug" bson:"slug"`
	Body      string `json:"body" bson:"body"`
	Category  string `json:"category" bson:"category"`
	Access    string `json:"access" bson:"access"`
	Status    string `json:"status" bson:"status"`
	CreatedAt int64  `json:"created_at" bson:"created_at"`
	UpdatedAt int64  `json:"updated_at" bson:"updated_at"`
}

// Access tiers, lowest to highest. An empty tier means the document is
// visible to everyone including anonymous visitors.
var accessLevels = map[string]int{
	"":              0,
	"subscriber":    1,
	"contributor":   2,
	"author":        3,
	"editor":        4,
	"administrator": 5,
}

// AccessLevel returns the numeric rank of an access tier. Unknown tiers
// rank above every role so that a typo locks the document down instead
// of exposing it.
func AccessLevel(tier string) int {
	if level, ok := accessLevels[tier]; ok {
		return level
	}
	return len(accessLevels)
}

// RoleSatisfies reports whether a viewer role grants access to the tier.
func RoleSatisfies(role, tier string) bool {
	if tier == "" {
		return true
	}
	return AccessLevel(role) >= AccessLevel(tier)
}
