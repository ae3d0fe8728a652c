package filters

import "strings"

type step struct {
	name string
	args map[string]string
}

// parseChain parses the compact textual form internal/codegen.chainText
// produces: "name" or "name(k=v, k2=v2)", repeated, separated by ":".
func parseChain(chain string) []step {
	var steps []step
	for _, part := range strings.Split(chain, ":") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name := part
		argsRaw := ""
		if open := strings.IndexByte(part, '('); open >= 0 && strings.HasSuffix(part, ")") {
			name = part[:open]
			argsRaw = part[open+1 : len(part)-1]
		}
		steps = append(steps, step{name: name, args: parseArgs(argsRaw)})
	}
	return steps
}

func parseArgs(raw string) map[string]string {
	args := map[string]string{}
	if strings.TrimSpace(raw) == "" {
		return args
	}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		if eq := strings.IndexByte(pair, '='); eq >= 0 {
			k := strings.TrimSpace(pair[:eq])
			v := strings.TrimSpace(pair[eq+1:])
			v = strings.Trim(v, `"'`)
			args[k] = v
		} else {
			args[pair] = ""
		}
	}
	return args
}
