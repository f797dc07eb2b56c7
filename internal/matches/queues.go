package matches

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/goccy/go-yaml"
)

//go:embed queues.yaml
var queuesYAML []byte

// queue is one row of the embedded queue table.
type queue struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

var queueNames = mustLoadQueues()

func mustLoadQueues() map[int]string {
	var queues []queue
	if err := yaml.Unmarshal(queuesYAML, &queues); err != nil {
		panic(fmt.Sprintf("matches: parsing embedded queue table: %v", err))
	}
	names := make(map[int]string, len(queues))
	for _, q := range queues {
		names[q.ID] = q.Name
	}
	return names
}

// QueueName maps a queue ID to its display name. Unknown IDs fall back to
// "Queue <id>" so new queues never break formatting.
func QueueName(queueID int) string {
	if name, ok := queueNames[queueID]; ok {
		return name
	}
	return "Queue " + strconv.Itoa(queueID)
}
