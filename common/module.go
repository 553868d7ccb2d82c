package common

type Module string

const (
	ModuleOrdinals Module = "ordinals"
)

func (m Module) String() string {
	return string(m)
}
