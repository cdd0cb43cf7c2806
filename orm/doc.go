/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
  - Each bucket contains only one type of model.
  - Keys are the bucket name, a colon and the model key.
  - Easy queries for one and iteration by a key prefix.

Models are serialized with the amino codec. Every record starts with a one
byte schema version, so that a model with only zero values is never stored as
an empty value.
*/
package orm
