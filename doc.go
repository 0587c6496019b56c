// Package intelitalk is the web portal for the InteliTalk university
// chatbot platform: three role scoped dashboards (Admin, Teacher, Student)
// plus a public guest chat, all backed by the remote InteliTalk API.
//
// The package owns the client side session and access control layer: who
// the current actor is, how that identity survives page loads, which
// screens an actor may reach, and where every boundary crossing (login,
// logout, direct navigation, role mismatch) redirects. The remote API is
// the source of truth for accounts, documents, and answers; the portal
// persists exactly one actor record in a signed cookie and renders what
// the API returns.
package intelitalk
