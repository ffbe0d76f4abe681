package web

func (s *Server) routes() {
	e := s.echo

	e.GET("/login", s.loginForm)
	e.POST("/login", s.login, s.rateLimitLogin)

	r := e.Group("", s.requireSession)

	r.GET("/", s.dashboard)
	r.GET("/logout", s.logoutConfirm)
	r.POST("/logout", s.logout)

	r.GET("/reports", s.reportScreen)
	r.GET("/reports/pdf", s.reportPDF)

	r.GET("/orders", s.orderList)
	r.GET("/orders/create", s.orderCreateForm)
	r.POST("/orders/create", s.orderCreate)
	r.GET("/orders/:id", s.orderDetail)
	r.GET("/orders/:id/edit", s.orderEditForm)
	r.POST("/orders/:id/edit", s.orderEdit)
	r.GET("/orders/:id/delete", s.orderDeleteConfirm)
	r.POST("/orders/:id/delete", s.orderDelete)
	r.GET("/orders/:id/add-item", s.orderItemForm)
	r.POST("/orders/:id/add-item", s.orderItemAdd)
	r.GET("/order-items/:id/delete", s.orderItemDeleteConfirm)
	r.POST("/order-items/:id/delete", s.orderItemDelete)

	r.GET("/clients", s.clientList)
	r.GET("/clients/create", s.clientCreateForm)
	r.POST("/clients/create", s.clientCreate)
	r.GET("/clients/:id/edit", s.clientEditForm)
	r.POST("/clients/:id/edit", s.clientEdit)
	r.GET("/clients/:id/delete", s.clientDeleteConfirm)
	r.POST("/clients/:id/delete", s.clientDelete)

	r.GET("/users", s.userList)
	r.GET("/users/create", s.userCreateForm)
	r.POST("/users/create", s.userCreate)
	r.GET("/users/:id/edit", s.userEditForm)
	r.POST("/users/:id/edit", s.userEdit)
	r.GET("/users/:id/delete", s.userDeleteConfirm)
	r.POST("/users/:id/delete", s.userDelete)

	r.GET("/roles", s.roleList)
	r.GET("/roles/create", s.roleCreateForm)
	r.POST("/roles/create", s.roleCreate)
	r.GET("/roles/:id/edit", s.roleEditForm)
	r.POST("/roles/:id/edit", s.roleEdit)
	r.GET("/roles/:id/delete", s.roleDeleteConfirm)
	r.POST("/roles/:id/delete", s.roleDelete)

	r.GET("/products", s.productList)
	r.GET("/products/create", s.productCreateForm)
	r.POST("/products/create", s.productCreate)
	r.GET("/products/:id/edit", s.productEditForm)
	r.POST("/products/:id/edit", s.productEdit)
	r.GET("/products/:id/delete", s.productDeleteConfirm)
	r.POST("/products/:id/delete", s.productDelete)

	r.GET("/addresses", s.addressList)
	r.GET("/addresses/create", s.addressCreateForm)
	r.POST("/addresses/create", s.addressCreate)
	r.GET("/addresses/:id/edit", s.addressEditForm)
	r.POST("/addresses/:id/edit", s.addressEdit)
	r.GET("/addresses/:id/delete", s.addressDeleteConfirm)
	r.POST("/addresses/:id/delete", s.addressDelete)

	r.GET("/order-statuses", s.statusList)
	r.GET("/order-statuses/create", s.statusCreateForm)
	r.POST("/order-statuses/create", s.statusCreate)
	r.GET("/order-statuses/:id/edit", s.statusEditForm)
	r.POST("/order-statuses/:id/edit", s.statusEdit)
	r.GET("/order-statuses/:id/delete", s.statusDeleteConfirm)
	r.POST("/order-statuses/:id/delete", s.statusDelete)

	r.GET("/payment-methods", s.methodList)
	r.GET("/payment-methods/create", s.methodCreateForm)
	r.POST("/payment-methods/create", s.methodCreate)
	r.GET("/payment-methods/:id/edit", s.methodEditForm)
	r.POST("/payment-methods/:id/edit", s.methodEdit)
	r.GET("/payment-methods/:id/delete", s.methodDeleteConfirm)
	r.POST("/payment-methods/:id/delete", s.methodDelete)
}
