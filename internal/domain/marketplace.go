package domain

const (
	CategoryFood        = "FOOD"
	CategoryMedicine    = "MEDICINE"
	CategoryAccessories = "ACCESSORIES"
	CategoryGrooming    = "GROOMING"
	CategoryOther       = "OTHER"

	OrderPending    = "PENDING"
	OrderProcessing = "PROCESSING"
	OrderShipped    = "SHIPPED"
	OrderDelivered  = "DELIVERED"
	OrderCancelled  = "CANCELLED"
)

type Product struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Category      string  `json:"category"`
	StockQuantity int     `json:"stockQuantity"`
	ImageURL      string  `json:"imageUrl"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

type CartItem struct {
	ProductID       string  `json:"productId"`
	ProductName     string  `json:"productName"`
	ProductPrice    float64 `json:"productPrice"`
	Quantity        int     `json:"quantity"`
	Subtotal        float64 `json:"subtotal"`
	ProductImageURL string  `json:"productImageUrl"`
}

// Cart is session-scoped on the backend; the client only mutates it via
// add/update/remove/clear calls and re-renders whatever comes back.
type Cart struct {
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Subtotal    float64 `json:"subtotal"`
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	PhoneNumber     string      `json:"phoneNumber"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}
