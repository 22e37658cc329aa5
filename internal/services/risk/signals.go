package risk

import (
    "encoding/json"
    "math"
)

// maxCount bounds any single signal count before weighting. Anything above it
// already saturates the score.
const maxCount = 1000

// Signals are the counts the scorer weighs, extracted from a findings document.
type Signals struct {
    Exploits            int
    SuspiciousProcesses int
    RegistryChanges     int
    VPN                 bool
}

// ExtractSignals reads the agent's findings document. Missing or malformed
// sections count as zero and unknown fields are ignored.
//
// Sections are looked up at the top level first and then under "findings",
// which is where the results view nests them.
func ExtractSignals(doc map[string]any) Signals {
    return Signals{
        Exploits:            countOf(section(doc, "exploits"), "count", "detected"),
        SuspiciousProcesses: countOf(section(doc, "processes"), "suspiciousCount", "suspicious"),
        RegistryChanges:     countOf(section(doc, "registry"), "modifiedCount", "modified"),
        VPN:                 vpnDetected(section(doc, "network")),
    }
}

func section(doc map[string]any, key string) any {
    if v, ok := doc[key]; ok && v != nil {
        return v
    }
    if nested, ok := doc["findings"].(map[string]any); ok {
        return nested[key]
    }
    return nil
}

// countOf accepts a list (one entry per hit) or an object carrying either a
// numeric count under countKey or a list under listKey.
func countOf(v any, countKey, listKey string) int {
    switch t := v.(type) {
    case []any:
        return min(len(t), maxCount)
    case map[string]any:
        if n, ok := number(t[countKey]); ok {
            return n
        }
        if list, ok := t[listKey].([]any); ok {
            return min(len(list), maxCount)
        }
    }
    return 0
}

func number(v any) (int, bool) {
    var f float64
    switch t := v.(type) {
    case float64:
        f = t
    case json.Number:
        parsed, err := t.Float64()
        if err != nil {
            return 0, false
        }
        f = parsed
    case int:
        f = float64(t)
    case int64:
        f = float64(t)
    default:
        return 0, false
    }
    if math.IsNaN(f) || f <= 0 {
        return 0, true
    }
    if f >= maxCount {
        return maxCount, true
    }
    return int(f), true
}

func vpnDetected(v any) bool {
    network, ok := v.(map[string]any)
    if !ok {
        return false
    }
    if truthy(network["vpnDetected"]) || truthy(network["proxyDetected"]) {
        return true
    }
    ifaces, _ := network["interfaces"].([]any)
    for _, iface := range ifaces {
        m, ok := iface.(map[string]any)
        if !ok {
            continue
        }
        if truthy(m["vpn"]) || truthy(m["proxy"]) {
            return true
        }
    }
    return false
}

func truthy(v any) bool {
    b, ok := v.(bool)
    return ok && b
}
