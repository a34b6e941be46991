package model

// SelectedOption 上游变体选项键值对
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// VariantOptions 上游平台返回的单个变体选项元数据
type VariantOptions struct {
	ProductID       string           `json:"product_id"`
	ProductHandle   string           `json:"product_handle"`
	ProductTitle    string           `json:"product_title"`
	VariantID       string           `json:"variant_id"`
	VariantTitle    string           `json:"variant_title"`
	SelectedOptions []SelectedOption `json:"selected_options"`
}
