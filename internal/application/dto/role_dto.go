package dto

// RoleRequest alta o edición de un rol. Permissions debe contener solo páginas conocidas.
type RoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// RoleResponse rol con sus páginas permitidas en el orden de navegación.
type RoleResponse struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}
