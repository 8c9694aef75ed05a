package realtime

import "strings"

// resourceURIPrefix is the canonical scheme for resource watch
// identifiers exposed to protocol clients.
const resourceURIPrefix = "open-mcp://resource/"

// ResourceChange is the cross-instance form of one change event.
type ResourceChange struct {
	URI string `json:"uri"`
}

// ResourceURI derives the canonical watch identifier for a resource
// family name.
func ResourceURI(name string) string {
	return resourceURIPrefix + name
}

// ResourceName extracts the family name from a watch identifier. A bare
// name passes through unchanged, matching what protocol clients send.
func ResourceName(uri string) string {
	if len(uri) >= len(resourceURIPrefix) && strings.EqualFold(uri[:len(resourceURIPrefix)], resourceURIPrefix) {
		return uri[len(resourceURIPrefix):]
	}
	return uri
}
