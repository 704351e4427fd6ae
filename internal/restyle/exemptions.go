package restyle

import (
	_ "embed"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed exemptions.yaml
var embeddedExemptionManifest []byte

const (
	manifestParseErrorTemplateConstant   = "unable to parse exemption manifest: %w"
	manifestEmptyExtensionsMessage       = "exemption manifest lists no source extensions"
	manifestValidationErrorTemplate      = "invalid exemption manifest: %s"
	pathSegmentSeparatorConstant         = "/"
	windowsPathSegmentSeparatorConstant  = "\\"
	decisionStyleableNameConstant        = "styleable"
	decisionExemptThirdPartyNameConstant = "exempt:3rdparty"
	decisionExemptGeneratedNameConstant  = "exempt:generated"
	decisionNotSourceNameConstant        = "not-source"
)

// Decision classifies a path for the restyle pass.
type Decision string

// Classification outcomes.
const (
	DecisionStyleable        Decision = Decision(decisionStyleableNameConstant)
	DecisionExemptThirdParty Decision = Decision(decisionExemptThirdPartyNameConstant)
	DecisionExemptGenerated  Decision = Decision(decisionExemptGeneratedNameConstant)
	DecisionNotSource        Decision = Decision(decisionNotSourceNameConstant)
)

// DirectoryRule binds a directory to the extension styled inside it.
type DirectoryRule struct {
	Directory string `yaml:"directory"`
	Extension string `yaml:"extension"`
}

// ExemptionManifest describes which paths participate in restyling.
type ExemptionManifest struct {
	VendoredPrefixes []string        `yaml:"vendored_prefixes"`
	SourceExtensions []string        `yaml:"source_extensions"`
	DirectoryRules   []DirectoryRule `yaml:"directory_rules"`
	GeneratedPaths   []string        `yaml:"generated_paths"`
}

// PathClassifier decides whether a path is restyled, exempt, or not source at all.
type PathClassifier struct {
	vendoredPrefixes map[string]struct{}
	sourceExtensions map[string]struct{}
	directoryRules   []DirectoryRule
	generatedPaths   map[string]struct{}
}

// NewPathClassifier builds a classifier from the embedded exemption manifest.
func NewPathClassifier() (*PathClassifier, error) {
	manifest := ExemptionManifest{}
	if unmarshalError := yaml.Unmarshal(embeddedExemptionManifest, &manifest); unmarshalError != nil {
		return nil, fmt.Errorf(manifestParseErrorTemplateConstant, unmarshalError)
	}
	return NewPathClassifierFromManifest(manifest)
}

// NewPathClassifierFromManifest builds a classifier from an explicit manifest.
func NewPathClassifierFromManifest(manifest ExemptionManifest) (*PathClassifier, error) {
	if len(manifest.SourceExtensions) == 0 {
		return nil, fmt.Errorf(manifestValidationErrorTemplate, manifestEmptyExtensionsMessage)
	}

	classifier := &PathClassifier{
		vendoredPrefixes: map[string]struct{}{},
		sourceExtensions: map[string]struct{}{},
		directoryRules:   append([]DirectoryRule{}, manifest.DirectoryRules...),
		generatedPaths:   map[string]struct{}{},
	}
	for _, vendoredPrefix := range manifest.VendoredPrefixes {
		classifier.vendoredPrefixes[strings.TrimSpace(vendoredPrefix)] = struct{}{}
	}
	for _, sourceExtension := range manifest.SourceExtensions {
		classifier.sourceExtensions[strings.TrimSpace(sourceExtension)] = struct{}{}
	}
	for _, generatedPath := range manifest.GeneratedPaths {
		classifier.generatedPaths[normalizePath(generatedPath)] = struct{}{}
	}
	return classifier, nil
}

// Classify maps a repository-relative path to exactly one decision. The
// decision depends only on path shape, never on file contents.
func (classifier *PathClassifier) Classify(candidatePath string) Decision {
	normalizedPath := normalizePath(candidatePath)

	if _, vendored := classifier.vendoredPrefixes[firstPathSegment(normalizedPath)]; vendored {
		return DecisionExemptThirdParty
	}

	if !classifier.isSourceCandidate(normalizedPath) {
		return DecisionNotSource
	}

	if _, generated := classifier.generatedPaths[normalizedPath]; generated {
		return DecisionExemptGenerated
	}

	return DecisionStyleable
}

// StyleablePaths filters the supplied paths down to the styleable subset,
// preserving input order.
func (classifier *PathClassifier) StyleablePaths(candidatePaths []string) []string {
	styleablePaths := []string{}
	for _, candidatePath := range candidatePaths {
		if classifier.Classify(candidatePath) == DecisionStyleable {
			styleablePaths = append(styleablePaths, candidatePath)
		}
	}
	return styleablePaths
}

func (classifier *PathClassifier) isSourceCandidate(normalizedPath string) bool {
	pathExtension := path.Ext(normalizedPath)
	if _, matches := classifier.sourceExtensions[pathExtension]; matches {
		return true
	}
	for _, directoryRule := range classifier.directoryRules {
		directoryPrefix := normalizePath(directoryRule.Directory) + pathSegmentSeparatorConstant
		if strings.HasPrefix(normalizedPath, directoryPrefix) && pathExtension == directoryRule.Extension {
			return true
		}
	}
	return false
}

func normalizePath(candidatePath string) string {
	slashPath := strings.ReplaceAll(candidatePath, windowsPathSegmentSeparatorConstant, pathSegmentSeparatorConstant)
	return strings.TrimPrefix(strings.TrimSpace(slashPath), pathSegmentSeparatorConstant)
}

func firstPathSegment(normalizedPath string) string {
	separatorIndex := strings.Index(normalizedPath, pathSegmentSeparatorConstant)
	if separatorIndex == -1 {
		return normalizedPath
	}
	return normalizedPath[:separatorIndex]
}
