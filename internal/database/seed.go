package database

import (
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/backoffice/internal/models"
	"github.com/example/backoffice/internal/status"
	"github.com/example/backoffice/internal/utils"
)

// EnsureAdmin creates the operator account when it does not exist yet.
func EnsureAdmin(conn *gorm.DB, email, password string) error {
	var existing models.AdminUser
	err := conn.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	return conn.Create(&models.AdminUser{Name: "Administrador", Email: email, PasswordHash: hash}).Error
}

// Seed fills an empty database with demo catalog, clients and orders.
func Seed(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("[Seed] Database already has data, skipping")
		return nil
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		cat := models.Category{Name: "Uniformes", Description: "Uniformes esportivos", Active: true}
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}

		product := models.Product{
			Name:             "Camisa Futebol Personalizada",
			CategoryID:       cat.ID,
			Price:            decimal.RequireFromString("89.90"),
			ShortDescription: "Camisa dry fit com sublimação total",
			Description:      "<p>Tecido leve e respirável.</p>",
			Active:           true,
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		sizes := []models.Size{
			{ProductID: product.ID, Size: "P"},
			{ProductID: product.ID, Size: "M"},
			{ProductID: product.ID, Size: "G"},
		}
		if err := tx.Create(&sizes).Error; err != nil {
			return err
		}

		client := models.Client{
			Name: "Maria Souza", Document: "123.456.789-00", Phone: "(11) 98888-7777",
			Email: "maria@example.com", Street: "Rua das Flores", Number: "120",
			District: "Centro", Cep: "01001-000", City: "São Paulo", State: "SP",
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		qty := 3
		line := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		order := models.Order{
			ClientID:      client.ID,
			OrderStatus:   status.OrderProduction,
			PaymentStatus: status.PaymentPaidOut,
			CheckoutID:    "chk_demo_001",
			PaymentMethod: "pix",
			Total:         line,
			Items: []models.OrderItem{
				{ProductID: product.ID, SizeID: sizes[1].ID, Quantity: qty, Total: line},
			},
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		log.Printf("[Seed] Inserted demo data (category %s, order %s)", cat.ID, order.ID)
		return nil
	})
}
