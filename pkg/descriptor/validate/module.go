package validate

import (
	"github.com/rs/zerolog"

	"github.com/infotecha/modhub/pkg/descriptor"
	"github.com/infotecha/modhub/pkg/errors"
)

// Module validates raw descriptor JSON end to end: structural validation
// first, convention checks second. Structural failure logs every issue with
// its path and offending value and returns false without running convention
// checks. Convention warnings are logged but never affect the result.
func Module(doc []byte, label string, logger *zerolog.Logger) bool {
	result, err := Structure(doc)
	if err != nil {
		logger.Error().Err(err).Str("module", label).Msg("descriptor validation could not run")
		return false
	}

	if !result.Valid {
		for _, issue := range result.Issues {
			logger.Error().
				Str("module", label).
				Str("path", issue.Path).
				Interface("value", issue.Value).
				Msg(issue.Message)
		}
		return false
	}

	var m descriptor.Module
	if err := ParseJSON(doc, &m); err != nil {
		// Structure already accepted the document, so this is unexpected.
		logger.Error().Err(errors.WrapParse("json", label, err)).Msg("descriptor decode failed")
		return false
	}

	for _, warning := range Conventions(&m) {
		logger.Warn().Str("module", label).Msg(warning)
	}

	return true
}
