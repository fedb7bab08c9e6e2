// Package domain define los tipos y errores de negocio compartidos por todas las capas:
// planes, roles y la taxonomía de errores que la capa HTTP traduce a status codes.
package domain
