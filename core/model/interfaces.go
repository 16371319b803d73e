package model

// ParameterGetter はハイパーパラメータを公開する分類器のインターフェース
type ParameterGetter interface {
	// GetParams はハイパーパラメータを返す
	GetParams() map[string]interface{}
}

// Cloner は学習前の状態の新しいインスタンスを作れる分類器のインターフェース。
// 交差検証で fold ごとに独立したインスタンスを使うために利用される
type Cloner interface {
	Clone() Classifier
}
