package database

import (
	database "github.com/jmarchena/marketbot/database/models"
	"github.com/jmarchena/marketbot/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type DBService struct {
	DB *gorm.DB
}

func NewDBService(dbHost string, dbPort string, dbName string, dbUser string, dbPass string) (*DBService, error) {
	dsn := dbUser + ":" + dbPass + "@tcp(" + dbHost + ":" + dbPort + ")/" + dbName + "?charset=utf8mb4&parseTime=True&loc=Local"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	dbs := &DBService{
		DB: db,
	}

	err = dbs.DB.AutoMigrate(&database.Order{})
	if err != nil {
		return nil, err
	}

	return dbs, nil
}

// AddOrder records a filled order together with the cash balance left
// after the fill.
func (dbs *DBService) AddOrder(order models.Order, cashBalance float64) uint {
	dbOrder := database.Order{
		OrderID:     order.ID,
		Symbol:      order.Symbol,
		Side:        database.SideType(order.Side),
		Type:        database.OrderType(order.Type),
		Quantity:    order.Quantity,
		FillPrice:   order.FillPrice,
		Commission:  order.Commission,
		Status:      database.OrderStatusType(order.Status),
		Time:        order.Timestamp.Unix(),
		CashBalance: cashBalance,
	}
	dbs.DB.Create(&dbOrder)
	return dbOrder.ID
}
