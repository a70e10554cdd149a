// Package selection presents lists of labels for multi-selection and asks
// yes/no questions.
//
// Two Selector backends exist: FuzzyFinderSelector drives an external fzf
// process and FormSelector renders a huh multi-select form. NewSelector picks
// one according to the configured Backend.
package selection
