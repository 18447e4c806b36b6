// Package trainer runs the punched cards experiment. For every key-space
// bit length it punches the training set, selects the most diverse card of
// every label and counts correct recognitions on the training and test sets.
// Every bit length is an independent experiment.
package trainer
