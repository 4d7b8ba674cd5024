package agents

import (
	"encoding/json"
	"fmt"
)

// printAgentReasoning dumps an agent's output to stdout between banner
// lines. Structured payloads are pretty-printed as JSON, anything else is
// printed as-is.
func printAgentReasoning(agentName string, output any) {
	fmt.Printf("\n%s %s %s\n", "==========", centerText(agentName, 28), "==========")

	switch v := output.(type) {
	case string:
		fmt.Println(v)
	default:
		if b, err := json.MarshalIndent(v, "", "  "); err == nil {
			fmt.Println(string(b))
		} else {
			fmt.Printf("%+v\n", v)
		}
	}
}

func centerText(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	right := width - len(s) - left
	return fmt.Sprintf("%*s%s%*s", left, "", s, right, "")
}
