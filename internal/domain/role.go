package domain

// RoleAdmin is the only role the gestão panel knows about. The admin gate is a
// low-assurance UI gate, not a user system.
const RoleAdmin = "admin"
