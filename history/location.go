package history

import "maps"

// Location describes where the application currently is.
type Location struct {
	// Path is the normalised, leading-slash path without query or hash decoration.
	Path string `json:"path" msgpack:"path"`
	// URL is the literal fragment pushed to the browser, including the hash-bang
	// prefix in hashbanged mode.
	URL string `json:"url" msgpack:"url"`
	// Pattern is the route pattern that produced the location, or Path when the
	// navigation was not pattern driven.
	Pattern string `json:"pattern" msgpack:"pattern"`
	// Params holds the parameters of the navigation.
	Params map[string]string `json:"params" msgpack:"params"`
	// Sender tags the logical origin of the navigation.
	Sender string `json:"sender" msgpack:"sender"`
}

// Clone returns a copy whose Params can be modified independently.
func (l Location) Clone() Location {
	l.Params = cloneParams(l.Params)

	return l
}

func cloneParams(params map[string]string) map[string]string {
	if params == nil {
		return map[string]string{}
	}

	return maps.Clone(params)
}

// locationFromString builds the location seeded by a configured path.
func locationFromString(path string, conf Config) Location {
	url := path
	if conf.Hashbanged {
		url = conf.HashbangPrefix + path
	}

	return Location{
		Path:    path,
		URL:     url,
		Pattern: path,
		Params:  map[string]string{},
	}
}
