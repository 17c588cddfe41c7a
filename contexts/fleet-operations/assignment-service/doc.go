// Package assignmentservice tracks which operator drives which car.
//
// A car has at most one active operator and an operator drives at most one
// car at a time, while every past assignment interval stays queryable as
// history. The module keeps domain/application logic decoupled from
// runtime/platform concerns through ports and adapter composition.
package assignmentservice
