package messages

import (
	"strings"

	"github.com/LeonardoBeccarini/soilparams/internal/model/entities"
)

// Topic layout of the soil profile flow: soil/profile/{raw|defaulted|rejected}/{profile}.
const (
	RawTopicPrefix       = "soil/profile/raw/"
	DefaultedTopicPrefix = "soil/profile/defaulted/"
	RejectedTopicPrefix  = "soil/profile/rejected/"
)

func RawTopic(profileID string) string       { return RawTopicPrefix + profileID }
func DefaultedTopic(profileID string) string { return DefaultedTopicPrefix + profileID }
func RejectedTopic(profileID string) string  { return RejectedTopicPrefix + profileID }

// ProfileSlug turns a profile name into a topic segment.
func ProfileSlug(name string) string {
	s := strings.Join(strings.Fields(entities.CanonicalName(name)), "-")
	s = strings.NewReplacer("/", "-", "+", "-", "#", "-").Replace(s)
	if s == "" {
		return "unknown"
	}
	return s
}

// ProfileIDFromTopic extracts {profile} from a soil profile topic. ok is false when
// the topic does not carry a usable segment.
func ProfileIDFromTopic(topic, prefix string) (string, bool) {
	suffix := strings.TrimPrefix(topic, prefix)
	if suffix == topic {
		return "", false
	}
	part := strings.Split(suffix, "/")[0]
	if part == "" || strings.ContainsAny(part, "+#") {
		return "", false
	}
	return part, true
}
