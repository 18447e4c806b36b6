// Package main provides the punched cards experiment on the MNIST dataset.
// For every punched card bit length it memorizes the most diverse card of
// each digit and reports training and test recognitions, using only integer
// counting and sorting.
package main
